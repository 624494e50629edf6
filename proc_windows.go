//go:build windows

package gitcmd

import (
	"errors"
	"os"
	"os/exec"
)

// Windows has no process groups in the POSIX sense; escalation collapses to
// a single Kill of the direct child.
func setProcessGroup(*exec.Cmd) {}

func terminate(p *os.Process) {
	if p == nil {
		return
	}
	_ = p.Kill()
}

func forceKill(p *os.Process) {
	if p == nil {
		return
	}
	_ = p.Kill()
}

func termSignal() os.Signal { return os.Kill }
func killSignal() os.Signal { return os.Kill }

func classifyWait(waitErr error) ExitStatus {
	if waitErr == nil {
		return ExitStatus{Kind: Exited, Code: 0}
	}
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		return ExitStatus{Kind: Exited, Code: exitErr.ExitCode()}
	}
	return ExitStatus{Kind: Exited, Code: -1}
}
