package gitcmd

// Result is the immutable record of one subprocess invocation: the argument
// vector actually executed, the captured streams after any chomp/encoding
// post-processing, and the exit classification.
//
// A Result holds no reference to the subprocess and is safe to retain and
// share after Run returns.
type Result struct {
	// Argv is the full vector executed, starting with the resolved binary.
	Argv []string
	// Stdout is the captured standard output. When Options.MergeStderr was
	// set it contains the interleaved stderr bytes as well.
	Stdout string
	// Stderr is the captured standard error. Empty when streams were merged.
	Stderr string
	// Status classifies how the process ended. For a Result returned by
	// Run (rather than carried by an error) the Kind is always Exited.
	Status ExitStatus
}

// ExitPolicy decides whether a normal exit code counts as success.
// The policy belongs to the command, not the runner: diff and fsck treat
// exit 1 as "differences found", most other commands require 0.
type ExitPolicy func(code int) bool

// ZeroOnly accepts exit code 0.
var ZeroOnly ExitPolicy = func(code int) bool { return code == 0 }

// ZeroOrOne accepts exit codes 0 and 1, the diff/fsck convention.
var ZeroOrOne ExitPolicy = func(code int) bool { return code == 0 || code == 1 }

// Check applies an exit-code policy to the result. It returns a
// *FailedError carrying the result when the policy rejects the code.
func (r *Result) Check(ok ExitPolicy) error {
	if r.Status.Kind == Exited && ok(r.Status.Code) {
		return nil
	}
	return &FailedError{Result: r}
}
