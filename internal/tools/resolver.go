package tools

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// DirLister abstracts executable lookup inside a directory so resolution is
// testable without a real filesystem.
type DirLister interface {
	// Executable reports whether dir contains an executable regular file
	// with the given name.
	Executable(dir, name string) bool
}

type osLister struct{}

func (osLister) Executable(dir, name string) bool {
	info, err := os.Stat(filepath.Join(dir, name))
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode()&0111 != 0
}

// NotFoundError reports a tool that exists in none of the search
// directories. It is a configuration error: a harness run cannot proceed
// with an unresolvable tool substitution.
type NotFoundError struct {
	Name string
	Dirs []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("tool %q not found in any search directory: %s", e.Name, strings.Join(e.Dirs, ", "))
}

// Resolver locates executables across an ordered list of directories.
// Order encodes priority: the first directory containing the tool wins, so
// a locally built tool listed first shadows a system-installed one.
type Resolver struct {
	dirs   []string
	lister DirLister
}

// NewResolver creates a Resolver over the given directories, consulted in
// order.
func NewResolver(dirs []string) *Resolver {
	return NewResolverWith(dirs, osLister{})
}

// NewResolverWith is like NewResolver with an injected DirLister, for tests.
func NewResolverWith(dirs []string, lister DirLister) *Resolver {
	return &Resolver{dirs: dirs, lister: lister}
}

// Resolve maps a Spec to a concrete invocation. Explicit Command or Path
// overrides bypass the search directories and are not pre-validated.
// Resolution is deterministic for a fixed directory list and filesystem
// state.
func (r *Resolver) Resolve(spec Spec) (Resolved, error) {
	if len(spec.Command) > 0 {
		return Resolved{Name: spec.Name, Argv: append(append([]string{}, spec.Command...), spec.ExtraArgs...)}, nil
	}
	if spec.Path != "" {
		return Resolved{Name: spec.Name, Argv: append([]string{spec.Path}, spec.ExtraArgs...)}, nil
	}

	fileName := spec.Name + exeSuffix()
	for _, dir := range r.dirs {
		if r.lister.Executable(dir, fileName) {
			return Resolved{Name: spec.Name, Argv: append([]string{filepath.Join(dir, fileName)}, spec.ExtraArgs...)}, nil
		}
	}
	return Resolved{}, &NotFoundError{Name: spec.Name, Dirs: r.dirs}
}

// exeSuffix returns the platform executable suffix convention.
func exeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}
