package discovery

import (
	"testing"

	"jlit/internal/domain"
)

func TestFilter_ByName(t *testing.T) {
	filter := NewFilter()
	tests := []domain.Test{
		{Path: "/suite/Execution/iadd.java", Name: "Execution/iadd.java"},
		{Path: "/suite/Execution/loop.j", Name: "Execution/loop.j"},
		{Path: "/suite/System/gc-pressure.java", Name: "System/gc-pressure.java"},
	}

	cases := []struct {
		name     string
		pattern  string
		expected int
	}{
		{"empty pattern keeps everything", "", 3},
		{"glob on extension", "*.java", 2},
		{"loose wildcard", "*gc*", 1},
		{"substring without wildcards", "loop", 1},
		{"question mark wildcard", "i?dd.java", 1},
		{"no match", "*missing*", 0},
		{"bare wildcard matches everything", "*", 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := filter.ByName(tests, tc.pattern)
			if len(got) != tc.expected {
				t.Errorf("pattern %q: expected %d tests, got %d", tc.pattern, tc.expected, len(got))
			}
		})
	}
}
