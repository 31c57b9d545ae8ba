//go:build !windows

package execution

import (
	"os/exec"
	"syscall"
)

// setProcessGroup starts the shell as its own process group leader and
// cancels by signaling the whole group, so children spawned by a run line
// die with it instead of outliving the deadline.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
