package ui

import (
	"fmt"

	"github.com/fatih/color"

	"jlit/internal/domain"
	"jlit/internal/subst"
)

// Formatter renders suite output on the terminal
type Formatter struct{}

// NewFormatter creates a new Formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

// PrintSummary displays the run statistics table and the failed tests.
func (f *Formatter) PrintSummary(meta domain.RunMeta, failures []domain.Failure) {
	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                      Suite Run Statistics                     ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	rows := []struct {
		label string
		value string
		paint *color.Color
	}{
		{"Suite", meta.Suite, color.New(color.FgWhite)},
		{"Total Tests", fmt.Sprintf("%d", meta.TotalTests), color.New(color.FgWhite)},
		{"Passed", fmt.Sprintf("%d", meta.Passed), color.New(color.FgGreen)},
		{"Failed", fmt.Sprintf("%d", meta.Failed), color.New(color.FgRed)},
		{"Timeouts", fmt.Sprintf("%d", meta.Timeouts), color.New(color.FgRed)},
		{"Expected Failures", fmt.Sprintf("%d", meta.ExpectedFails), color.New(color.FgYellow)},
		{"Skipped", fmt.Sprintf("%d", meta.Skipped), color.New(color.FgYellow)},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), color.New(color.FgWhite)},
		{"Workers", fmt.Sprintf("%d", meta.Workers), color.New(color.FgWhite)},
	}

	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")
	for i, row := range rows {
		if i > 0 {
			fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")
		}
		fmt.Printf("│ %-31s │ ", row.label)
		row.paint.Printf("%-27s", row.value)
		fmt.Println(" │")
	}
	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Println()
	if meta.Failed == 0 {
		color.Green("✓ All tests passed!")
		return
	}

	color.Red("✗ %d test(s) failed", meta.Failed)
	for _, failure := range failures {
		color.Red("  %s: %s", failure.Status, failure.TestName)
		if failure.Diagnostic != "" {
			fmt.Printf("      %s\n", failure.Diagnostic)
		}
	}
}

// PrintResult displays one result line, used in verbose mode.
func (f *Formatter) PrintResult(result domain.Result) {
	paint := color.New(color.FgGreen)
	if result.Status.Failed() {
		paint = color.New(color.FgRed)
	} else if result.Status == domain.StatusSkip {
		paint = color.New(color.FgYellow)
	}
	paint.Printf("%-7s", result.Status)
	fmt.Printf(" %s (%.2fs)\n", result.Test.Name, result.Duration.Seconds())
}

// PrintTestList displays the discovered tests without executing them.
func (f *Formatter) PrintTestList(tests []domain.Test) {
	color.Cyan("Discovered %d test(s):\n", len(tests))
	for _, test := range tests {
		fmt.Printf("  %s\n", test.Name)
	}
}

// PrintSubstitutions displays the resolved substitution table in
// registration order, later entries shadowing earlier ones.
func (f *Formatter) PrintSubstitutions(pairs []subst.Pair) {
	color.Cyan("Substitution table (%d entries, in registration order):\n", len(pairs))
	for _, pair := range pairs {
		color.Green("  %-24s", pair.Token)
		fmt.Printf(" -> %s\n", pair.Expansion)
	}
}

// PrintWarnings displays discovery warnings on stderr-like yellow.
func (f *Formatter) PrintWarnings(warnings []string) {
	for _, warning := range warnings {
		color.Yellow("warning: %s", warning)
	}
}
