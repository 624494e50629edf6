package gitcmd

import (
	"io"
	"time"

	"golang.org/x/text/encoding"
)

// NoTimeout disables the timeout for a single invocation even when a
// process-wide default timeout is set.
const NoTimeout = time.Duration(-1)

// Options configures a single invocation. The zero value runs the command
// with the caller's environment, captures both streams, and applies the
// process-wide default timeout if one is set.
type Options struct {
	// Env overlays the base environment. Values replace or add variables.
	Env map[string]string
	// Unset removes variables from the base environment entirely. Unsetting
	// is not the same as setting to the empty string; git distinguishes the
	// two for variables like GIT_INDEX_FILE.
	Unset []string

	// Stdin, when non-nil, is connected to the subprocess's standard input.
	Stdin io.Reader

	// Stdout and Stderr are optional sinks that receive the stream bytes as
	// they are produced, in addition to the captured copy on the Result.
	// A write error on either aborts the invocation with an *IOError.
	Stdout io.Writer
	Stderr io.Writer

	// MergeStderr interleaves stderr bytes into the stdout capture (and the
	// Stdout sink) instead of capturing them separately.
	MergeStderr bool

	// Timeout bounds the invocation. Zero means "use the process-wide
	// default"; NoTimeout disables the deadline outright. On expiry the
	// process group gets SIGTERM, then SIGKILL after the runner's grace
	// period, and Run returns a *TimeoutError.
	Timeout time.Duration

	// Chomp strips a single trailing line terminator from the captured
	// stdout and stderr.
	Chomp bool

	// Encoding reinterprets captured bytes using the given external
	// encoding before any further processing. Nil leaves bytes as-is.
	Encoding encoding.Encoding
}
