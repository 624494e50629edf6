package gitcmd

import (
	"fmt"
	"strings"
	"time"
)

// FailedError reports a normal exit whose code the caller's ExitPolicy
// rejected. It carries the full Result so failures are diagnosable without
// re-running the command.
type FailedError struct {
	Result *Result
}

func (e *FailedError) Error() string {
	return describe("failed", e.Result)
}

// SignaledError reports a subprocess killed by an uncaught signal. Signal
// death is never a success, regardless of exit-code policy.
type SignaledError struct {
	Result *Result
	// Cause is set when the runner itself delivered the signal on behalf of
	// a cancelled context, so errors.Is(err, context.Canceled) works.
	Cause error
}

func (e *SignaledError) Error() string {
	return describe("killed", e.Result)
}

func (e *SignaledError) Unwrap() error { return e.Cause }

// TimeoutError is a SignaledError raised because the configured deadline
// elapsed before the process exited.
type TimeoutError struct {
	SignaledError
	// After is the deadline that was configured for the invocation.
	After time.Duration
}

func (e *TimeoutError) Error() string {
	return describe("timed out", e.Result)
}

func (e *TimeoutError) Unwrap() error { return &e.SignaledError }

// IOError reports that a caller-supplied sink failed while receiving
// streamed output. The invocation is aborted as soon as the sink fails;
// Result holds whatever had been captured up to that point.
type IOError struct {
	Result *Result
	Err    error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: writing output to sink: %v", commandLine(e.Result.Argv), e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ArgumentError reports structurally invalid arguments detected before
// spawning: a revision that would parse as a flag, a malformed timeout, a
// binary that cannot be resolved. The subprocess is never started.
type ArgumentError struct {
	Msg string
}

func (e *ArgumentError) Error() string { return e.Msg }

func argErrorf(format string, args ...any) *ArgumentError {
	return &ArgumentError{Msg: fmt.Sprintf(format, args...)}
}

// describe renders the argv, exit classification, and captured stderr into
// one diagnosable line.
func describe(verb string, r *Result) string {
	msg := fmt.Sprintf("%s %s: %s", commandLine(r.Argv), verb, r.Status)
	if stderr := strings.TrimSpace(r.Stderr); stderr != "" {
		msg += "; stderr: " + stderr
	}
	return msg
}

// commandLine joins an argv for display, quoting arguments with spaces.
func commandLine(argv []string) string {
	parts := make([]string, 0, len(argv))
	for _, a := range argv {
		if strings.ContainsAny(a, " \t\n") {
			a = fmt.Sprintf("%q", a)
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}
