package discovery

import (
	"path/filepath"
	"strings"

	"jlit/internal/domain"
)

// Filter narrows a discovered test set by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// ByName keeps tests whose file name matches the pattern. Patterns support
// * and ? wildcards ("*loop*", "i?dd.java"); a pattern without wildcards is
// a substring match.
func (f *Filter) ByName(tests []domain.Test, pattern string) []domain.Test {
	if pattern == "" {
		return tests
	}

	var filtered []domain.Test
	for _, test := range tests {
		name := filepath.Base(test.Path)
		if matched, err := filepath.Match(pattern, name); err == nil && matched {
			filtered = append(filtered, test)
			continue
		}
		if !strings.ContainsAny(pattern, "*?") {
			if strings.Contains(name, pattern) {
				filtered = append(filtered, test)
			}
			continue
		}
		if matchParts(name, pattern) {
			filtered = append(filtered, test)
		}
	}
	return filtered
}

// matchParts handles loose patterns like "*loop*" by requiring every
// non-wildcard fragment to appear in the name.
func matchParts(name, pattern string) bool {
	parts := strings.Split(pattern, "*")
	hasFragment := false
	for _, part := range parts {
		if part == "" {
			continue
		}
		hasFragment = true
		if !strings.Contains(name, part) {
			return false
		}
	}
	return hasFragment
}
