package ui

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"jlit/internal/domain"
)

// FailureViewer displays the failed tests of the last run in an
// interactive TUI: the failure list on the left, captured diagnostics and
// output on the right.
type FailureViewer struct{}

// NewFailureViewer creates a new FailureViewer
func NewFailureViewer() *FailureViewer {
	return &FailureViewer{}
}

// View runs the interactive viewer over the stored run output.
func (v *FailureViewer) View(output *domain.RunOutput) error {
	if len(output.Failures) == 0 {
		color.Green("✓ No test failures in the last run!")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(true).
		SetHighlightFullLine(true)
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)
	list.SetBorder(true).SetTitle(fmt.Sprintf(" %d failed test(s) ", len(output.Failures)))

	details := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)
	details.SetBorder(true).SetTitle(" Diagnostics ")

	showFailure := func(index int) {
		if index < 0 || index >= len(output.Failures) {
			return
		}
		failure := output.Failures[index]
		text := fmt.Sprintf("[yellow]Test:[white] %s\n[yellow]File:[white] %s\n[yellow]Status:[red] %s[white]\n",
			failure.TestName, failure.FilePath, failure.Status)
		if failure.Diagnostic != "" {
			text += fmt.Sprintf("\n[yellow]Diagnostic:[white]\n%s\n", tview.Escape(failure.Diagnostic))
		}
		if failure.Output != "" {
			text += fmt.Sprintf("\n[yellow]Captured output:[white]\n%s", tview.Escape(failure.Output))
		}
		details.SetText(text).ScrollToBeginning()
	}

	for i, failure := range output.Failures {
		list.AddItem(
			fmt.Sprintf("[yellow]%d.[white] %s", i+1, failure.TestName),
			fmt.Sprintf("   [red]%s[white]", failure.Status),
			0, nil,
		)
	}
	list.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		showFailure(index)
	})
	showFailure(0)

	layout := tview.NewFlex().
		AddItem(list, 0, 1, true).
		AddItem(details, 0, 2, false)

	frame := tview.NewFrame(layout).
		SetBorders(0, 0, 0, 1, 0, 0).
		AddText(fmt.Sprintf("[gray]%s · %d/%d failed · q to quit", output.Meta.Suite, output.Meta.Failed, output.Meta.TotalTests),
			false, tview.AlignCenter, tcell.ColorGray)

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Key() == tcell.KeyEscape, event.Rune() == 'q':
			app.Stop()
			return nil
		case event.Key() == tcell.KeyTab:
			if app.GetFocus() == list {
				app.SetFocus(details)
			} else {
				app.SetFocus(list)
			}
			return nil
		}
		return event
	})

	return app.SetRoot(frame, true).Run()
}
