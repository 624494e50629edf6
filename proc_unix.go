//go:build unix

package gitcmd

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// setProcessGroup puts the child in its own process group so that
// termination signals reach any descendants git spawned (hooks, pagers,
// credential helpers).
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// terminate delivers SIGTERM to the whole process group.
func terminate(p *os.Process) {
	if p == nil {
		return
	}
	_ = syscall.Kill(-p.Pid, syscall.SIGTERM)
}

// forceKill delivers SIGKILL to the whole process group.
func forceKill(p *os.Process) {
	if p == nil {
		return
	}
	_ = syscall.Kill(-p.Pid, syscall.SIGKILL)
}

func termSignal() os.Signal { return syscall.SIGTERM }
func killSignal() os.Signal { return syscall.SIGKILL }

// classifyWait turns cmd.Wait's error into an ExitStatus: nil is exit 0, an
// ExitError is either a code or an uncaught signal, anything else is
// reported as an unknown nonzero exit.
func classifyWait(waitErr error) ExitStatus {
	if waitErr == nil {
		return ExitStatus{Kind: Exited, Code: 0}
	}
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			return ExitStatus{Kind: Signaled, Signal: ws.Signal()}
		}
		return ExitStatus{Kind: Exited, Code: exitErr.ExitCode()}
	}
	return ExitStatus{Kind: Exited, Code: -1}
}
