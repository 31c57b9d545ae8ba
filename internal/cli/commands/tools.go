package commands

import (
	"github.com/spf13/cobra"

	"jlit/internal/cli"
	"jlit/internal/config"
	"jlit/internal/execution"
	"jlit/internal/ui"
)

// ToolsCommand handles the tools command
type ToolsCommand struct {
	flags     *cli.Flags
	formatter *ui.Formatter
}

// NewToolsCommand creates a new ToolsCommand
func NewToolsCommand(flags *cli.Flags, formatter *ui.Formatter) *ToolsCommand {
	return &ToolsCommand{flags: flags, formatter: formatter}
}

// Execute resolves the suite's tools and prints the substitution table.
// A tool that resolves nowhere fails here with the same configuration
// error a run would produce, so suite setups can be validated cheaply.
func (tc *ToolsCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(tc.flags.ToConfigFlags())
	if err != nil {
		return err
	}

	session, err := execution.NewSession(cfg)
	if err != nil {
		return err
	}

	tc.formatter.PrintSubstitutions(session.Table.Entries())
	return nil
}
