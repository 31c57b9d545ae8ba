package execution

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"jlit/internal/domain"
	"jlit/internal/matcher"
)

// Runner executes a single prepared test in an isolated environment
// snapshot. Run lines execute strictly in sequence and short-circuit on
// the first failing line; the whole test shares one wall-clock budget.
type Runner struct {
	session *Session
	matcher matcher.Matcher
}

// NewRunner creates a new Runner
func NewRunner(session *Session, m matcher.Matcher) *Runner {
	return &Runner{session: session, matcher: m}
}

// Run executes one test and classifies the outcome. It never mutates
// process-wide state: the command environment is a fresh snapshot and the
// working directory is the test's own scratch dir, so results are
// independent of execution order.
func (r *Runner) Run(pt *PreparedTest) domain.Result {
	start := time.Now()
	result := domain.Result{Test: pt.Test}

	if reason := pt.Script.SkipReason(r.session.Features); reason != "" {
		result.Status = domain.StatusSkip
		result.Diagnostic = reason
		result.Duration = time.Since(start)
		return result
	}

	if len(pt.Commands) == 0 {
		result.Status = domain.StatusFail
		result.Diagnostic = "test file contains no RUN lines"
		result.Duration = time.Since(start)
		return result
	}

	if err := os.MkdirAll(pt.ScratchDir, 0755); err != nil {
		result.Status = domain.StatusFail
		result.Diagnostic = fmt.Sprintf("create scratch dir: %v", err)
		result.Duration = time.Since(start)
		return result
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.session.Config.Timeout)
	defer cancel()

	var output strings.Builder
	status, diagnostic := r.runCommands(ctx, pt, &output)

	if status == domain.StatusPass {
		if err := r.matcher.Match(output.String(), pt.Script.Checks); err != nil {
			status = domain.StatusFail
			diagnostic = err.Error()
		}
	}

	// XFAIL inverts pass and fail; timeouts stay timeouts.
	if pt.Script.ExpectedToFail(r.session.Features) {
		switch status {
		case domain.StatusPass:
			status = domain.StatusXPass
			diagnostic = "test was expected to fail but passed"
		case domain.StatusFail:
			status = domain.StatusXFail
			diagnostic = ""
		}
	}

	result.Status = status
	result.Diagnostic = diagnostic
	result.Output = output.String()
	result.Duration = time.Since(start)
	return result
}

// pipeGrace bounds how long a finished or killed run line may keep its
// output pipe open through surviving children before the pipe is forced
// closed.
const pipeGrace = 2 * time.Second

// runCommands executes the expanded run lines in order against the shared
// deadline, returning the first failure.
func (r *Runner) runCommands(ctx context.Context, pt *PreparedTest, output *strings.Builder) (domain.Status, string) {
	env := r.session.Env.Slice()
	for _, command := range pt.Commands {
		cmd := exec.CommandContext(ctx, "sh", "-c", command.Line)
		cmd.Env = env
		cmd.Dir = pt.ScratchDir
		// Killing only the shell leaves background children holding the
		// output pipe, which would block the worker past the deadline.
		cmd.WaitDelay = pipeGrace
		setProcessGroup(cmd)

		out, err := cmd.CombinedOutput()
		output.Write(out)

		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return domain.StatusTimeout, fmt.Sprintf("run line exceeded the %v timeout: %s", r.session.Config.Timeout, command.Line)
		}
		if err != nil && !command.ExpectFail {
			return domain.StatusFail, fmt.Sprintf("run line exited nonzero (%v): %s", err, command.Line)
		}
		if err == nil && command.ExpectFail {
			return domain.StatusFail, fmt.Sprintf("run line was expected to fail but exited 0: %s", command.Line)
		}
	}
	return domain.StatusPass, ""
}
