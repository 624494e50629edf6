package output

import (
	"bytes"
	"testing"
)

func TestResolveColorMode(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		tty     bool
		noColor string
		want    bool
	}{
		{name: "never disables on TTY", mode: "never", tty: true, want: false},
		{name: "never disables on non-TTY", mode: "never", tty: false, want: false},
		{name: "always enables on TTY", mode: "always", tty: true, want: true},
		{name: "always enables on non-TTY", mode: "always", tty: false, want: true},
		{name: "auto uses TTY true", mode: "auto", tty: true, want: true},
		{name: "auto uses TTY false", mode: "auto", tty: false, want: false},
		{name: "empty string defaults to auto", mode: "", tty: true, want: true},
		{name: "unknown value defaults to auto", mode: "bogus", tty: false, want: false},
		{name: "NO_COLOR disables auto", mode: "auto", tty: true, noColor: "1", want: false},
		{name: "always overrides NO_COLOR", mode: "always", tty: false, noColor: "1", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", tt.noColor)
			got := ResolveColorMode(tt.mode, tt.tty)
			if got != tt.want {
				t.Errorf("ResolveColorMode(%q, %v) = %v, want %v", tt.mode, tt.tty, got, tt.want)
			}
		})
	}
}

func TestIsTTY_Buffer(t *testing.T) {
	var buf bytes.Buffer
	if IsTTY(&buf) {
		t.Error("IsTTY(buffer) should return false")
	}
}

func TestColorOff_ZeroStyles(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	if printer.style.err.GetBold() {
		t.Error("color=false should leave styles zeroed")
	}

	printer.Error(NewUserError("test error"))
	if containsANSI(buf.String()) {
		t.Errorf("color=false should produce no ANSI codes, got: %q", buf.String())
	}
}

func TestColorOn_StyledSet(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, true)

	// The rendered bytes depend on the terminal profile, but the style
	// set itself must carry the color attributes.
	if !printer.style.err.GetBold() {
		t.Error("color=true should install the colored style set")
	}
}

// containsANSI checks if a string contains ANSI escape sequences.
func containsANSI(s string) bool {
	for i := range len(s) - 1 {
		if s[i] == '\033' && s[i+1] == '[' {
			return true
		}
	}
	return false
}
