package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"jlit/internal/cli"
	"jlit/internal/config"
	"jlit/internal/storage"
	"jlit/internal/ui"
)

// FailuresCommand handles the failures command
type FailuresCommand struct {
	flags  *cli.Flags
	viewer *ui.FailureViewer
}

// NewFailuresCommand creates a new FailuresCommand
func NewFailuresCommand(flags *cli.Flags, viewer *ui.FailureViewer) *FailuresCommand {
	return &FailuresCommand{flags: flags, viewer: viewer}
}

// Execute runs the command
func (fc *FailuresCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(fc.flags.ToConfigFlags())
	if err != nil {
		return err
	}

	output, err := storage.NewJSONStorage(cfg).Load()
	if err != nil {
		return fmt.Errorf("no stored results; run the suite first: %w", err)
	}

	return fc.viewer.View(output)
}
