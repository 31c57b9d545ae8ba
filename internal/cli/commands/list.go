package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"jlit/internal/cli"
	"jlit/internal/config"
	"jlit/internal/discovery"
	"jlit/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	flags     *cli.Flags
	filter    *discovery.Filter
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(flags *cli.Flags, filter *discovery.Filter, formatter *ui.Formatter) *ListCommand {
	return &ListCommand{flags: flags, filter: filter, formatter: formatter}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(lc.flags.ToConfigFlags())
	if err != nil {
		return err
	}

	scanner := discovery.NewScanner(cfg.Suffixes, cfg.Excludes)
	tests, warnings, err := scanner.Scan(cfg.TestRoot)
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrConfiguration, err)
	}
	lc.formatter.PrintWarnings(warnings)

	tests = lc.filter.ByName(tests, cfg.Flags.NameFilter)
	if len(tests) == 0 {
		color.Yellow("No tests found")
		return nil
	}

	lc.formatter.PrintTestList(tests)
	return nil
}
