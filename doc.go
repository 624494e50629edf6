// Package gitcmd runs the git executable as a subprocess and reports the
// outcome as typed values.
//
// The package deliberately knows nothing about git semantics. It spawns the
// binary with a controlled environment, pumps stdout and stderr concurrently,
// enforces an optional deadline, and classifies how the process ended. What
// the output means is the business of the porcelain parsers and the repo
// command layer built on top.
//
// # Running a command
//
//	r := gitcmd.NewRunner("")
//	res, err := r.Run(ctx, []string{"status", "--porcelain=v2"}, gitcmd.Options{})
//	if err != nil {
//	    return err // *SignaledError, *TimeoutError, *IOError, or *ArgumentError
//	}
//	if err := res.Check(gitcmd.ZeroOnly); err != nil {
//	    return err // *FailedError carrying the full Result
//	}
//
// The runner never judges exit codes itself: any normal exit produces a
// Result, and the caller applies its own ExitPolicy. Commands like diff and
// fsck use exit code 1 to mean "differences found", which is a success for
// them and a failure for almost everything else.
//
// # Concurrency
//
// Runners are safe for concurrent use. Each invocation snapshots the
// process-wide defaults (timeout, SSH command) at start, so mutating them
// never affects an in-flight call.
package gitcmd
