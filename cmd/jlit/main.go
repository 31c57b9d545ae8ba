package main

import (
	"errors"
	"fmt"
	"os"

	"jlit/internal/cli"
	"jlit/internal/cli/commands"
	"jlit/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "jlit",
		Short:         "Lit-style integration test harness for command-line toolchains",
		Long:          `jlit discovers test files carrying embedded RUN directives, resolves the suite's tools across ordered search directories, rewrites placeholder tokens into concrete commands, and executes everything in parallel isolated environments.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Create flags struct (populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(&flags)

	// Register all commands
	cmds.Register(rootCmd, &flags)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		// Configuration errors abort before any test executes and get
		// their own exit code, distinct from "some tests failed".
		if errors.Is(err, config.ErrConfiguration) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
