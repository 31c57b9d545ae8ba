package cli

import (
	"time"

	"jlit/internal/config"
)

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

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ConfigFile: f.ConfigFile,
		TestRoot:   f.TestRoot,
		Workers:    f.Workers,
		NameFilter: f.NameFilter,
		Timeout:    f.Timeout,
		FailFast:   f.FailFast,
		OnlyFailed: f.OnlyFailed,
		Verbose:    f.Verbose,
		NoProgress: f.NoProgress,
	}
}
