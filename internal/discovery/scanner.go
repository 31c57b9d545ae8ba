// Package discovery enumerates the test files of a suite.
package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"jlit/internal/domain"
)

// Scanner walks a suite root and selects test files by suffix allow-list,
// pruning excluded names. Two scans of an unchanged tree yield the same
// tests in the same lexicographic order.
type Scanner struct {
	suffixes map[string]bool
	excludes map[string]bool
}

// NewScanner creates a Scanner. Suffixes are file extensions including the
// dot (".java"); excludes are exact base names of files or directories that
// must never be treated as tests (fixture dirs, suite config, driver files).
func NewScanner(suffixes, excludes []string) *Scanner {
	suffixMap := make(map[string]bool, len(suffixes))
	for _, s := range suffixes {
		suffixMap[s] = true
	}
	excludeMap := make(map[string]bool, len(excludes))
	for _, e := range excludes {
		excludeMap[e] = true
	}
	return &Scanner{suffixes: suffixMap, excludes: excludeMap}
}

// Scan finds all test files under root. Unreadable entries are skipped and
// reported as warnings rather than aborting the walk; one inaccessible
// fixture must not block the rest of the suite.
func (s *Scanner) Scan(root string) (tests []domain.Test, warnings []string, err error) {
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, nil, fmt.Errorf("test root does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("test root is not a directory: %s", root)
	}

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("skipping %s: %v", path, err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		if d.IsDir() {
			// Skip hidden directories (starting with .)
			if strings.HasPrefix(name, ".") && path != root {
				return filepath.SkipDir
			}
			if s.excludes[name] {
				return filepath.SkipDir
			}
			return nil
		}

		if s.excludes[name] {
			return nil
		}
		if s.suffixes[filepath.Ext(name)] {
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = name
			}
			tests = append(tests, domain.Test{Path: path, Name: filepath.ToSlash(rel)})
		}
		return nil
	})
	if walkErr != nil {
		return nil, warnings, walkErr
	}

	// WalkDir visits entries in lexical order, so enumeration is stable
	// across runs against an unchanged tree.
	return tests, warnings, nil
}
