package output

import (
	"io"
	"os"
)

// ResolveColorMode turns the --color flag value into an on/off decision.
// "always" and "never" force the answer; anything else (the "auto" default)
// follows TTY detection, with NO_COLOR in the environment disabling auto.
func ResolveColorMode(mode string, tty bool) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return tty
}

// IsTTY reports whether w is a character device. Anything that is not an
// *os.File, such as a buffer or a cobra-wrapped pipe, is not a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
