// Package output provides structured output handling for the gitcmd CLI.
//
// This package handles both human-readable and JSON output formats so every
// command works equally well for human users and for automation driving the
// binary.
//
// # Printer
//
// The Printer is the primary interface for command output. It switches
// format on the --json flag and styling on the resolved color mode:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonFlag, useColor)
//
//	// Structured reports
//	printer.WriteJSON(report)
//
//	// Human reports
//	printer.Section("Branch")
//	printer.KeyValue("Name", branch)
//	printer.Table([]string{"State", "Path"}, rows)
//
//	// Failures and warnings
//	printer.Error(err)
//	printer.Warn("dangling objects found")
//
// # JSON Mode
//
// When JSON mode is enabled (via --json flag), all output is structured:
//
//	// Success: {"branch": "...", "files": [...], ...}
//	// Error: {"error": "message", "code": N}
//
// # Exit Codes
//
// The package defines standard exit codes and error types:
//
//	output.ExitSuccess     // 0: Success, nothing to report
//	output.ExitUserError   // 1: User error (bad args, not a repository)
//	output.ExitSystemError // 2: System error (git failed, I/O error)
//	output.ExitFindings    // 3: Findings (dirty tree, integrity problems)
//
// Library errors from driving git are mapped with FromGitError, which sends
// argument problems to ExitUserError and everything else to ExitSystemError.
package output
