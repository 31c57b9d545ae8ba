package config

import "time"

const (
	// DefaultSuiteName is used when the suite config names none
	DefaultSuiteName = "suite"
	// DefaultTestRoot is the default test source root
	DefaultTestRoot = "."
	// DefaultExecRoot is the default scratch directory for test outputs
	DefaultExecRoot = "build/tests"
	// DefaultResultsFile is the persisted run results file name
	DefaultResultsFile = "jlit-results.json"
	// DefaultConfigFile is the suite configuration file looked up in the
	// test root when no --config flag is given
	DefaultConfigFile = "jlit.yaml"
	// DefaultTimeout is the per-test wall-clock bound
	DefaultTimeout = 5 * time.Minute
	// DefaultWorkers is the default number of parallel workers
	DefaultWorkers = 4
)

// DefaultEnvAllow are the ambient variables projected into test
// environments. Sanitizer option variables ride along so instrumented
// toolchains keep their settings.
var DefaultEnvAllow = []string{
	"PATH",
	"HOME",
	"INCLUDE",
	"LIB",
	"TMP",
	"TEMP",
	"TMPDIR",
	"TSAN_OPTIONS",
	"ASAN_OPTIONS",
	"UBSAN_OPTIONS",
}

// DefaultSuffixes are the file extensions treated as tests
var DefaultSuffixes = []string{".java", ".j"}

// DefaultExcludes are names never treated as tests or traversed: auxiliary
// fixture directories and the harness's own driver files.
var DefaultExcludes = []string{
	"Inputs",
	"jlit.yaml",
	".env",
	DefaultResultsFile,
}
