package config

import (
	"errors"
	"path/filepath"
	"time"
)

// ErrConfiguration marks errors that make a harness run impossible, as
// opposed to individual test failures. The CLI maps them to exit code 2
// and never starts executing tests.
var ErrConfiguration = errors.New("configuration error")

// Tool declares one logical tool of the suite configuration.
type Tool struct {
	Name      string   `yaml:"name"`
	ExtraArgs []string `yaml:"extra_args,omitempty"`
	Path      string   `yaml:"path,omitempty"`
	Command   []string `yaml:"command,omitempty"`
}

// Substitution declares one literal token/value pair.
type Substitution struct {
	Token string `yaml:"token"`
	Value string `yaml:"value"`
}

// Config holds all configuration for a harness run
type Config struct {
	// Suite identity and roots
	SuiteName string
	TestRoot  string // where test files live
	ExecRoot  string // scratch directory for %t outputs

	// Tool resolution
	ToolDirs []string
	Tools    []Tool

	// Execution environment
	EnvAllow   []string          // ambient variables projected into test runs
	EnvSet     map[string]string // variables injected unconditionally
	PathAppend []string          // directories appended to PATH

	// Literal substitutions registered after the tool table
	Substitutions []Substitution

	// Feature set for REQUIRES / UNSUPPORTED / XFAIL (GOOS and GOARCH are
	// always added)
	Features []string

	// Discovery
	Suffixes []string
	Excludes []string

	// Execution settings
	Timeout time.Duration
	Workers int

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	ConfigFile string
	TestRoot   string
	Workers    int
	NameFilter string
	Timeout    time.Duration
	FailFast   bool
	OnlyFailed bool
	Verbose    bool
	NoProgress bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		SuiteName: DefaultSuiteName,
		TestRoot:  DefaultTestRoot,
		ExecRoot:  DefaultExecRoot,
		Timeout:   DefaultTimeout,
		Workers:   DefaultWorkers,
		EnvSet:    map[string]string{},
		Flags:     Flags{Workers: DefaultWorkers},
	}
	cfg.EnvAllow = append(cfg.EnvAllow, DefaultEnvAllow...)
	cfg.Suffixes = append(cfg.Suffixes, DefaultSuffixes...)
	cfg.Excludes = append(cfg.Excludes, DefaultExcludes...)
	return cfg
}

// ApplyFlags overlays parsed command-line flags onto the config.
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	if flags.TestRoot != "" {
		c.TestRoot = flags.TestRoot
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Timeout > 0 {
		c.Timeout = flags.Timeout
	}
}

// GetResultsPath returns the absolute path of the persisted run results.
// Resolving to an absolute path keeps run and failures commands pointed at
// the same file regardless of cwd.
func (c *Config) GetResultsPath() string {
	p := filepath.Join(c.ExecRoot, DefaultResultsFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// FeatureSet returns the features visible to REQUIRES / UNSUPPORTED / XFAIL
// markers, including the host platform names.
func (c *Config) FeatureSet(goos, goarch string) map[string]bool {
	features := make(map[string]bool, len(c.Features)+2)
	for _, f := range c.Features {
		features[f] = true
	}
	features[goos] = true
	features[goarch] = true
	return features
}
