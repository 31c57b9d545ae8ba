package domain

// Test represents a discovered test file
type Test struct {
	Path string // Full path to the test file
	Name string // Path relative to the suite root, used in reports
}
