package porcelain

import "fmt"

// ParseError reports a line the parser did not expect. These surface
// version skew between this library and the installed git binary; they are
// never silently swallowed.
type ParseError struct {
	// Reason says what was wrong with the line.
	Reason string
	// Line is the offending line, verbatim.
	Line string
	// LineNum is the 1-based position of the line in the output.
	LineNum int
	// Output is the complete text being parsed, for context.
	Output string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unexpected git output at line %d (%s): %q", e.LineNum, e.Reason, e.Line)
}

func parseErrorf(output, line string, lineNum int, format string, args ...any) *ParseError {
	return &ParseError{
		Reason:  fmt.Sprintf(format, args...),
		Line:    line,
		LineNum: lineNum,
		Output:  output,
	}
}
