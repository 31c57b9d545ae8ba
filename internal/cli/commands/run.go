package commands

import (
	"fmt"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"jlit/internal/cli"
	"jlit/internal/config"
	"jlit/internal/discovery"
	"jlit/internal/domain"
	"jlit/internal/execution"
	"jlit/internal/matcher"
	"jlit/internal/storage"
	"jlit/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	flags     *cli.Flags
	filter    *discovery.Filter
	formatter *ui.Formatter
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(flags *cli.Flags, filter *discovery.Filter, formatter *ui.Formatter) *RunCommand {
	return &RunCommand{flags: flags, filter: filter, formatter: formatter}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(rc.flags.ToConfigFlags())
	if err != nil {
		return err
	}

	// Discover tests
	scanner := discovery.NewScanner(cfg.Suffixes, cfg.Excludes)
	tests, warnings, err := scanner.Scan(cfg.TestRoot)
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrConfiguration, err)
	}
	rc.formatter.PrintWarnings(warnings)

	tests = rc.filter.ByName(tests, cfg.Flags.NameFilter)

	store := storage.NewJSONStorage(cfg)
	if cfg.Flags.OnlyFailed {
		tests, err = keepPreviouslyFailed(tests, store)
		if err != nil {
			return err
		}
	}

	if len(tests) == 0 {
		color.Yellow("No tests to execute")
		return nil
	}

	// Resolve tools and build the substitution table; expand every run
	// line up front so configuration errors surface before any test runs.
	session, err := execution.NewSession(cfg)
	if err != nil {
		return err
	}
	prepared, err := session.Prepare(tests)
	if err != nil {
		return err
	}

	runner := execution.NewRunner(session, matcher.NewSubstring())
	pool := execution.NewPool(cfg.Workers, runner)
	if !cfg.Flags.NoProgress {
		pool.SetProgress(ui.NewProgressBar(len(prepared)))
	}

	var results []domain.Result
	var duration time.Duration
	if cfg.Flags.FailFast {
		results, duration = pool.ExecuteFailFast(prepared)
	} else {
		results, duration = pool.Execute(prepared)
	}

	// Completion order is nondeterministic across workers; report in name
	// order so output is diffable between runs.
	sort.Slice(results, func(i, j int) bool { return results[i].Test.Name < results[j].Test.Name })

	if cfg.Flags.Verbose {
		for _, result := range results {
			rc.formatter.PrintResult(result)
		}
	}

	if err := store.Save(results, duration, cfg.Workers); err != nil {
		return fmt.Errorf("failed to save run results: %w", err)
	}

	output, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to reload run results: %w", err)
	}
	rc.formatter.PrintSummary(output.Meta, output.Failures)

	if output.Meta.Failed > 0 {
		return fmt.Errorf("%d of %d test(s) failed", output.Meta.Failed, output.Meta.TotalTests)
	}
	return nil
}

// keepPreviouslyFailed narrows the discovered set to tests recorded as
// failed in the stored results of the last run.
func keepPreviouslyFailed(tests []domain.Test, store storage.Storage) ([]domain.Test, error) {
	output, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("%w: --failed needs results from a previous run: %v", config.ErrConfiguration, err)
	}
	failed := make(map[string]bool, len(output.Failures))
	for _, failure := range output.Failures {
		failed[failure.TestName] = true
	}
	var kept []domain.Test
	for _, test := range tests {
		if failed[test.Name] {
			kept = append(kept, test)
		}
	}
	return kept, nil
}
