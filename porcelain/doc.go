// Package porcelain decodes git's script-oriented text output into typed
// values: raw diff records, patch listings, numstat and dirstat summaries,
// porcelain-v2 status reports, and fsck integrity reports.
//
// Parsers consume the captured stdout of a gitcmd invocation. They never
// invoke git themselves and never reorder what the tool emitted. A line the
// parser does not recognize is a compatibility problem with the installed
// git version, not an operational failure, and is reported as a *ParseError
// carrying the offending line and the full output for context.
package porcelain
