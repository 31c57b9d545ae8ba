//go:build windows

package execution

import "os/exec"

// setProcessGroup is a no-op on windows; WaitDelay still bounds the wait
// on the output pipe.
func setProcessGroup(cmd *exec.Cmd) {}
