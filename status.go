package gitcmd

import (
	"fmt"
	"os"
	"time"
)

// ExitKind says how a subprocess ended.
type ExitKind int

const (
	// Exited means the process terminated normally with an exit code.
	Exited ExitKind = iota
	// Signaled means the process was killed by an uncaught signal.
	Signaled
	// TimedOut means the runner killed the process after the configured
	// deadline elapsed.
	TimedOut
)

// ExitStatus classifies how an invocation ended.
//
// Kind selects which of the remaining fields are meaningful: Code for
// Exited, Signal for Signaled and TimedOut, Timeout for TimedOut only.
type ExitStatus struct {
	Kind    ExitKind
	Code    int
	Signal  os.Signal
	Timeout time.Duration
}

// String renders the classification for logs and error messages.
func (s ExitStatus) String() string {
	switch s.Kind {
	case Signaled:
		return fmt.Sprintf("signal %v", s.Signal)
	case TimedOut:
		return fmt.Sprintf("timed out after %v (killed with %v)", s.Timeout, s.Signal)
	default:
		return fmt.Sprintf("exit %d", s.Code)
	}
}
