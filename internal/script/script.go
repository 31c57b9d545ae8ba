// Package script extracts embedded harness directives from test files.
//
// Directives live in ordinary comment lines and carry a keyword followed by
// a colon:
//
//	// RUN: jvmc %s -o %t
//	// RUN: jvm %t | grep 42
//	// RUN-FAIL: jvm --no-such-flag
//	// XFAIL: windows
//	// REQUIRES: gc-statistics
//	// UNSUPPORTED: arm64
//	// CHECK: expected output fragment
//
// The comment leader is irrelevant; any line containing a keyword is a
// directive, so the same grammar works for //, ;, and # comment styles.
// A RUN or RUN-FAIL body ending in a backslash continues on the next
// directive line of the same keyword.
package script

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// RunLine is one executable command extracted from a test file.
type RunLine struct {
	Command    string
	ExpectFail bool // nonzero exit is the passing outcome for this line
}

// Script is the parsed directive content of one test file.
type Script struct {
	RunLines    []RunLine
	Checks      []string // expectation fragments consumed by the matcher
	XFail       []string // feature names, or "*" for unconditional
	Requires    []string // features that must all be present, else skip
	Unsupported []string // features whose presence skips the test
}

// ExpectedToFail reports whether the whole test is expected to fail given
// the harness feature set.
func (s *Script) ExpectedToFail(features map[string]bool) bool {
	for _, f := range s.XFail {
		if f == "*" || features[f] {
			return true
		}
	}
	return false
}

// SkipReason returns a non-empty reason when a REQUIRES or UNSUPPORTED
// clause rules the test out on this host.
func (s *Script) SkipReason(features map[string]bool) string {
	for _, f := range s.Requires {
		if !features[f] {
			return fmt.Sprintf("requires feature %q", f)
		}
	}
	for _, f := range s.Unsupported {
		if f == "*" || features[f] {
			return fmt.Sprintf("unsupported with feature %q", f)
		}
	}
	return ""
}

var directivePattern = regexp.MustCompile(`\b(RUN-FAIL|RUN|XFAIL|REQUIRES|UNSUPPORTED|CHECK):(.*)$`)

// Parse reads a test file and extracts its directives in file order.
func Parse(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read test file: %w", err)
	}
	return parseText(string(data))
}

func parseText(text string) (*Script, error) {
	s := &Script{}
	var pending string // continuation accumulated from trailing backslashes
	var pendingKw string

	for _, line := range strings.Split(text, "\n") {
		m := directivePattern.FindStringSubmatch(line)
		if m == nil {
			if pending != "" {
				return nil, fmt.Errorf("%s: line continuation not followed by another %s: line", pendingKw, pendingKw)
			}
			continue
		}
		keyword, body := m[1], strings.TrimSpace(m[2])

		if pending != "" && keyword != pendingKw {
			return nil, fmt.Errorf("%s: line continuation not followed by another %s: line", pendingKw, pendingKw)
		}

		switch keyword {
		case "RUN", "RUN-FAIL":
			if pending != "" {
				body = pending + " " + body
				pending = ""
			}
			if strings.HasSuffix(body, "\\") {
				pending = strings.TrimSpace(strings.TrimSuffix(body, "\\"))
				pendingKw = keyword
				continue
			}
			if body == "" {
				continue
			}
			s.RunLines = append(s.RunLines, RunLine{Command: body, ExpectFail: keyword == "RUN-FAIL"})
		case "CHECK":
			s.Checks = append(s.Checks, body)
		case "XFAIL":
			s.XFail = append(s.XFail, splitList(body)...)
		case "REQUIRES":
			s.Requires = append(s.Requires, splitList(body)...)
		case "UNSUPPORTED":
			s.Unsupported = append(s.Unsupported, splitList(body)...)
		}
	}
	if pending != "" {
		return nil, fmt.Errorf("%s: dangling line continuation at end of file", pendingKw)
	}
	return s, nil
}

func splitList(body string) []string {
	var out []string
	for _, item := range strings.Split(body, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
