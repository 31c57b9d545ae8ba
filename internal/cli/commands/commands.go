package commands

import (
	"jlit/internal/cli"
	"jlit/internal/discovery"
	"jlit/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Tools    *ToolsCommand
	Failures *FailuresCommand
}

// NewCommands creates all commands with dependencies. The config itself is
// loaded per invocation, after flag parsing, since the suite file location
// is a flag.
func NewCommands(flags *cli.Flags) *Commands {
	filter := discovery.NewFilter()
	formatter := ui.NewFormatter()
	viewer := ui.NewFailureViewer()

	return &Commands{
		Run:      NewRunCommand(flags, filter, formatter),
		List:     NewListCommand(flags, filter, formatter),
		Tools:    NewToolsCommand(flags, formatter),
		Failures: NewFailuresCommand(flags, viewer),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags) {
	// Run command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the test suite",
		Long:  "Discover tests, resolve the tool substitution table, and execute every run line using parallel workers",
		RunE:  c.Run.Execute,
	}
	runCmd.Flags().StringVarP(&flags.ConfigFile, "config", "c", "", "Path to the suite configuration file (default: jlit.yaml in the test root)")
	runCmd.Flags().StringVarP(&flags.TestRoot, "test-root", "t", "", "Root directory where test discovery starts")
	runCmd.Flags().IntVarP(&flags.Workers, "workers", "p", 0, "Number of parallel workers")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by file name pattern (supports wildcards, e.g. '*loop*' or 'i?dd.java')")
	runCmd.Flags().DurationVar(&flags.Timeout, "timeout", 0, "Per-test wall-clock timeout (e.g. 30s, 5m)")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop handing out tests after the first failure")
	runCmd.Flags().BoolVar(&flags.OnlyFailed, "failed", false, "Run only the tests that failed in the last run")
	runCmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Print one line per test result")
	runCmd.Flags().BoolVar(&flags.NoProgress, "no-progress", false, "Disable the progress bar")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered tests",
		Long:  "Scan and list all tests without executing them",
		RunE:  c.List.Execute,
	}
	listCmd.Flags().StringVarP(&flags.ConfigFile, "config", "c", "", "Path to the suite configuration file")
	listCmd.Flags().StringVarP(&flags.TestRoot, "test-root", "t", "", "Root directory where test discovery starts")
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by file name pattern")
	rootCmd.AddCommand(listCmd)

	// Tools command
	toolsCmd := &cobra.Command{
		Use:   "tools",
		Short: "Show the resolved substitution table",
		Long:  "Resolve every declared tool against the search directories and print the substitution table, failing on configuration errors",
		RunE:  c.Tools.Execute,
	}
	toolsCmd.Flags().StringVarP(&flags.ConfigFile, "config", "c", "", "Path to the suite configuration file")
	toolsCmd.Flags().StringVarP(&flags.TestRoot, "test-root", "t", "", "Root directory of the suite")
	rootCmd.AddCommand(toolsCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:   "failures",
		Short: "View last run's failures interactively",
		Long:  "Display the failed tests from the last suite run in an interactive viewer",
		RunE:  c.Failures.Execute,
	}
	failuresCmd.Flags().StringVarP(&flags.ConfigFile, "config", "c", "", "Path to the suite configuration file")
	failuresCmd.Flags().StringVarP(&flags.TestRoot, "test-root", "t", "", "Root directory of the suite")
	rootCmd.AddCommand(failuresCmd)
}
