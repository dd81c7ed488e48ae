//go:build !windows

package infra

import (
	"os/exec"
	"syscall"
)

// setupProcessGroup puts the bridge in its own process group so that
// cancellation also reaches the adb server fork it may spawn.
func setupProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// killProcess kills the whole process group.
func killProcess(cmd *exec.Cmd) {
	if cmd.Process != nil {
		_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
