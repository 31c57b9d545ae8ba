package domain

import "time"

// Status classifies the outcome of one test execution.
type Status string

const (
	StatusPass    Status = "PASS"
	StatusFail    Status = "FAIL"
	StatusXFail   Status = "XFAIL"   // expected failure, failed as expected
	StatusXPass   Status = "XPASS"   // expected failure, unexpectedly passed
	StatusTimeout Status = "TIMEOUT" // failure subtype: run line exceeded the wall-clock bound
	StatusSkip    Status = "SKIP"    // platform/feature requirement not met
)

// Failed reports whether the status counts against the suite.
// Skips and expected failures do not.
func (s Status) Failed() bool {
	return s == StatusFail || s == StatusXPass || s == StatusTimeout
}

// Result represents the outcome of executing a single test
type Result struct {
	Test       Test
	Status     Status
	Output     string        // Combined stdout+stderr of the executed run lines
	Diagnostic string        // Why the test failed or was skipped
	Duration   time.Duration // Time taken to execute
}

// RunMeta contains metadata about a suite run
type RunMeta struct {
	Suite           string  `json:"suite"`
	TotalTests      int     `json:"total_tests"`
	Passed          int     `json:"passed"`
	Failed          int     `json:"failed"`
	Skipped         int     `json:"skipped"`
	ExpectedFails   int     `json:"expected_fails"`
	Timeouts        int     `json:"timeouts"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Workers         int     `json:"workers"`
	Timestamp       string  `json:"timestamp"`
}

// Failure records one failed test for storage and the failures viewer
type Failure struct {
	TestName   string `json:"test_name"`
	FilePath   string `json:"file_path"`
	Status     string `json:"status"`
	Diagnostic string `json:"diagnostic"`
	Output     string `json:"output"`
}

// RunOutput is the complete persisted structure for a suite run
type RunOutput struct {
	Meta     RunMeta   `json:"meta"`
	Failures []Failure `json:"failures"`
}

// Summarize tallies results into run metadata.
func Summarize(suite string, results []Result, duration time.Duration, workers int, timestamp string) RunMeta {
	meta := RunMeta{
		Suite:           suite,
		TotalTests:      len(results),
		Duration:        duration.String(),
		DurationSeconds: duration.Seconds(),
		Workers:         workers,
		Timestamp:       timestamp,
	}
	for _, r := range results {
		switch r.Status {
		case StatusPass:
			meta.Passed++
		case StatusSkip:
			meta.Skipped++
		case StatusXFail:
			meta.ExpectedFails++
		case StatusTimeout:
			meta.Timeouts++
			meta.Failed++
		default:
			meta.Failed++
		}
	}
	return meta
}
