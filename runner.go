package gitcmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/transform"
)

// defaultGrace is how long a timed-out or cancelled process gets between
// SIGTERM and SIGKILL.
const defaultGrace = 2 * time.Second

// Runner spawns the git binary and reports structured results. The zero
// value is usable; NewRunner fills in the binary name.
//
// A Runner is safe for concurrent use: it holds no per-invocation state
// beyond the cached binary path.
type Runner struct {
	// Binary is the executable to run. Defaults to "git". Resolved through
	// PATH once per Runner and cached.
	Binary string
	// Dir is the working directory for invocations. Empty means inherit.
	Dir string
	// Logger, when non-nil, receives the argv and exit classification at
	// Info and the captured streams at Debug.
	Logger *zap.Logger
	// Grace is the TERM-to-KILL escalation window for timeouts and
	// cancellation. Defaults to two seconds.
	Grace time.Duration

	resolveOnce sync.Once
	resolved    string
	resolveErr  error
}

// NewRunner returns a Runner for the given binary ("" means "git").
func NewRunner(binary string) *Runner {
	if binary == "" {
		binary = "git"
	}
	return &Runner{Binary: binary}
}

// Path returns the resolved absolute path of the binary, looking it up on
// first use. Version-gated callers use this to probe the executable once.
func (r *Runner) Path() (string, error) {
	r.resolveOnce.Do(func() {
		binary := r.Binary
		if binary == "" {
			binary = "git"
		}
		r.resolved, r.resolveErr = exec.LookPath(binary)
	})
	if r.resolveErr != nil {
		return "", argErrorf("cannot resolve %q: ensure git is installed and in PATH", r.Binary)
	}
	return r.resolved, nil
}

// waitOutcome carries the pump and wait results out of the reaper goroutine.
type waitOutcome struct {
	pumpErr error
	waitErr error
}

// Run executes the binary with args and returns the invocation Result.
//
// Any normal exit, whatever the code, yields a Result; apply an ExitPolicy
// via Result.Check to decide success. Signal death yields a *SignaledError,
// deadline expiry a *TimeoutError, sink write failure an *IOError, and
// invalid arguments an *ArgumentError before the process is ever spawned.
func (r *Runner) Run(ctx context.Context, args []string, opts Options) (*Result, error) {
	path, err := r.Path()
	if err != nil {
		return nil, err
	}

	defaults := snapshotDefaults()
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaults.timeout
	}
	if timeout < 0 {
		timeout = 0
	}

	cmd := exec.Command(path, args...)
	cmd.Dir = r.Dir
	cmd.Env = overlayEnv(os.Environ(), opts.Env, opts.Unset)
	cmd.Stdin = opts.Stdin
	setProcessGroup(cmd)

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("opening stdout pipe: %w", err)
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("opening stderr pipe: %w", err)
	}

	var outBuf, errBuf bytes.Buffer
	outCapture := &capture{buf: &outBuf, sink: opts.Stdout}
	errCapture := &capture{buf: &errBuf, sink: opts.Stderr}
	if opts.MergeStderr {
		// Both pumps write through the stdout capture; its mutex keeps the
		// interleaved writes whole.
		errCapture = outCapture
	}

	started := time.Now()
	if err := cmd.Start(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return nil, argErrorf("cannot start %q: %v", path, err)
		}
		return nil, fmt.Errorf("starting %s: %w", commandLine(cmd.Args), err)
	}

	abort := func() { forceKill(cmd.Process) }

	pumps := new(errgroup.Group)
	pumps.Go(func() error { return pump(stdoutPipe, outCapture, abort) })
	pumps.Go(func() error { return pump(stderrPipe, errCapture, abort) })

	done := make(chan waitOutcome, 1)
	go func() {
		// Pumps must drain before Wait closes the pipes.
		pumpErr := pumps.Wait()
		done <- waitOutcome{pumpErr: pumpErr, waitErr: cmd.Wait()}
	}()

	var deadline <-chan time.Time
	var timer *time.Timer
	if timeout > 0 {
		timer = time.NewTimer(timeout)
		deadline = timer.C
		defer timer.Stop()
	}

	var outcome waitOutcome
	var timedOut bool
	var cancelled bool
	killSignal := os.Signal(nil)

	select {
	case outcome = <-done:
	case <-deadline:
		timedOut = true
		killSignal, outcome = r.reap(cmd, done)
	case <-ctx.Done():
		cancelled = true
		killSignal, outcome = r.reap(cmd, done)
	}

	status := classifyWait(outcome.waitErr)
	result := &Result{Argv: cmd.Args, Status: status}
	result.Stdout, err = finalizeText(outBuf.Bytes(), opts)
	if err == nil {
		result.Stderr, err = finalizeText(errBuf.Bytes(), opts)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: decoding output: %w", commandLine(cmd.Args), err)
	}

	r.logResult(result, time.Since(started))

	switch {
	case outcome.pumpErr != nil:
		return nil, &IOError{Result: result, Err: outcome.pumpErr}
	case timedOut:
		result.Status.Kind = TimedOut
		result.Status.Timeout = timeout
		result.Status.Signal = killSignal
		return nil, &TimeoutError{
			SignaledError: SignaledError{Result: result},
			After:         timeout,
		}
	case cancelled:
		return nil, &SignaledError{Result: result, Cause: ctx.Err()}
	case status.Kind == Signaled:
		return nil, &SignaledError{Result: result}
	default:
		return result, nil
	}
}

// reap terminates the process group gracefully, escalating to SIGKILL if it
// is still alive after the grace period, and waits for the reaper goroutine.
func (r *Runner) reap(cmd *exec.Cmd, done <-chan waitOutcome) (os.Signal, waitOutcome) {
	terminate(cmd.Process)
	grace := r.Grace
	if grace <= 0 {
		grace = defaultGrace
	}
	select {
	case outcome := <-done:
		return termSignal(), outcome
	case <-time.After(grace):
		forceKill(cmd.Process)
		return killSignal(), <-done
	}
}

// logResult emits the observability side effects; nothing here affects
// correctness.
func (r *Runner) logResult(res *Result, elapsed time.Duration) {
	if r.Logger == nil {
		return
	}
	r.Logger.Info("git command finished",
		zap.Strings("argv", res.Argv),
		zap.String("status", res.Status.String()),
		zap.Duration("elapsed", elapsed),
	)
	r.Logger.Debug("git command output",
		zap.String("stdout", res.Stdout),
		zap.String("stderr", res.Stderr),
	)
}

// capture tees stream bytes into the in-memory buffer and an optional sink.
// The mutex matters only in merge mode, when two pumps share one capture.
type capture struct {
	mu   sync.Mutex
	buf  *bytes.Buffer
	sink io.Writer
}

func (c *capture) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buf.Write(p)
	if c.sink != nil {
		if _, err := c.sink.Write(p); err != nil {
			return len(p), err
		}
	}
	return len(p), nil
}

// pump copies one stream into its capture. A sink failure aborts the
// invocation: the process is killed and the rest of the stream is drained so
// the reaper can finish.
func pump(src io.Reader, dst *capture, abort func()) error {
	buf := make([]byte, 32*1024)
	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			if _, writeErr := dst.Write(buf[:n]); writeErr != nil {
				abort()
				_, _ = io.Copy(io.Discard, src)
				return writeErr
			}
		}
		if readErr != nil {
			// EOF or pipe closed by process exit; either way the stream is over.
			return nil
		}
	}
}

// overlayEnv applies set/unset overrides to a base environment. Unset keys
// are removed entirely; git treats "unset" and "empty" differently.
func overlayEnv(base []string, set map[string]string, unset []string) []string {
	if len(set) == 0 && len(unset) == 0 {
		return base
	}
	drop := make(map[string]bool, len(set)+len(unset))
	for key := range set {
		drop[key] = true
	}
	for _, key := range unset {
		drop[key] = true
	}

	env := make([]string, 0, len(base)+len(set))
	for _, kv := range base {
		if key, _, ok := strings.Cut(kv, "="); ok && drop[key] {
			continue
		}
		env = append(env, kv)
	}
	for key, value := range set {
		env = append(env, key+"="+value)
	}
	return env
}

// finalizeText applies the caller-declared external encoding and chomp to
// captured bytes. Applies identically whether or not the bytes were also
// streamed to a sink.
func finalizeText(raw []byte, opts Options) (string, error) {
	if opts.Encoding != nil {
		decoded, _, err := transform.Bytes(opts.Encoding.NewDecoder(), raw)
		if err != nil {
			return "", err
		}
		raw = decoded
	}
	text := string(raw)
	if opts.Chomp {
		text = chomp(text)
	}
	return text, nil
}

// chomp strips a single trailing line terminator.
func chomp(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
