// Package matcher checks captured test output against expectation
// fragments. The harness treats the matcher as a pluggable collaborator;
// Substring is the built-in default.
package matcher

import (
	"fmt"
	"strings"
)

// Matcher validates captured output against a test's CHECK fragments.
type Matcher interface {
	// Match returns nil when the output satisfies every fragment.
	Match(output string, checks []string) error
}

// Substring requires each fragment to appear in the output, in order, each
// match consuming the output up to and including itself.
type Substring struct{}

// NewSubstring returns the default ordered-substring matcher.
func NewSubstring() Substring {
	return Substring{}
}

// Match implements Matcher.
func (Substring) Match(output string, checks []string) error {
	rest := output
	for i, check := range checks {
		idx := strings.Index(rest, check)
		if idx < 0 {
			return fmt.Errorf("expected fragment %d not found in output: %q", i+1, check)
		}
		rest = rest[idx+len(check):]
	}
	return nil
}
