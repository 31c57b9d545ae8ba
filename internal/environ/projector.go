// Package environ projects an allow-listed subset of the ambient process
// environment into isolated, immutable execution environments.
package environ

import (
	"os"
	"sort"
)

// Projector builds execution environments from an allow-list of ambient
// variables. Variables not on the list never leak into test executions.
type Projector struct {
	vars map[string]string
}

// NewProjector creates a Projector holding the allow-listed subset of the
// current process environment. Allowed variables that are unset in the
// ambient environment are simply absent, not empty.
func NewProjector(allow []string) *Projector {
	ambient := make(map[string]string, len(allow))
	for _, name := range allow {
		if value, ok := os.LookupEnv(name); ok {
			ambient[name] = value
		}
	}
	return &Projector{vars: ambient}
}

// NewProjectorFrom is like NewProjector but reads from the given map instead
// of the process environment, for tests.
func NewProjectorFrom(allow []string, ambient map[string]string) *Projector {
	vars := make(map[string]string, len(allow))
	for _, name := range allow {
		if value, ok := ambient[name]; ok {
			vars[name] = value
		}
	}
	return &Projector{vars: vars}
}

// Set assigns a variable unconditionally, bypassing the allow-list.
func (p *Projector) Set(name, value string) {
	p.vars[name] = value
}

// AppendPath appends dir to a path-like variable using the OS list separator.
// If the variable is unset the value becomes dir alone.
func (p *Projector) AppendPath(name, dir string) {
	if current, ok := p.vars[name]; ok && current != "" {
		p.vars[name] = current + string(os.PathListSeparator) + dir
		return
	}
	p.vars[name] = dir
}

// PrependPath prepends dir to a path-like variable so it takes priority.
func (p *Projector) PrependPath(name, dir string) {
	if current, ok := p.vars[name]; ok && current != "" {
		p.vars[name] = dir + string(os.PathListSeparator) + current
		return
	}
	p.vars[name] = dir
}

// Snapshot returns an immutable copy of the projected variables. Later
// Projector mutations do not affect previously taken snapshots.
func (p *Projector) Snapshot() Environment {
	vars := make(map[string]string, len(p.vars))
	for k, v := range p.vars {
		vars[k] = v
	}
	return Environment{vars: vars}
}

// Environment is an immutable variable set consumed by test executions.
type Environment struct {
	vars map[string]string
}

// Get returns the value of a variable and whether it is present.
func (e Environment) Get(name string) (string, bool) {
	value, ok := e.vars[name]
	return value, ok
}

// With returns a derived environment with one additional variable set.
// The receiver is unchanged.
func (e Environment) With(name, value string) Environment {
	vars := make(map[string]string, len(e.vars)+1)
	for k, v := range e.vars {
		vars[k] = v
	}
	vars[name] = value
	return Environment{vars: vars}
}

// Slice renders the environment as sorted KEY=VALUE pairs for exec.Cmd.
// Sorting keeps executions reproducible across runs.
func (e Environment) Slice() []string {
	pairs := make([]string, 0, len(e.vars))
	for k, v := range e.vars {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return pairs
}
