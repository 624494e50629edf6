// Package quotepath decodes the quoted pathnames git emits for "unusual"
// filenames.
//
// When a path contains control characters, backslashes, double quotes, or
// (under core.quotePath=true) any non-ASCII byte, git wraps it in double
// quotes and escapes the offending bytes: C-style single-character escapes
// for the usual suspects and three-digit octal escapes for raw bytes. A
// multi-byte UTF-8 character therefore arrives as a run of octal escapes,
// one per byte, and must be reassembled before the text makes sense.
//
// Decoding is one-directional; this library never needs to re-quote a path.
package quotepath

import "fmt"

// Unquote decodes a possibly-quoted path token into the original text.
// Unquoted tokens pass through unchanged.
func Unquote(token string) (string, error) {
	if len(token) < 2 || token[0] != '"' || token[len(token)-1] != '"' {
		return token, nil
	}
	inner := token[1 : len(token)-1]

	// Escapes append raw bytes; converting once at the end regroups
	// consecutive octal escapes into whole UTF-8 characters.
	out := make([]byte, 0, len(inner))
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c != '\\' {
			out = append(out, c)
			continue
		}
		i++
		if i >= len(inner) {
			return "", fmt.Errorf("quotepath: trailing backslash in %q", token)
		}
		e := inner[i]
		if e >= '0' && e <= '7' {
			val := 0
			digits := 0
			for digits < 3 && i < len(inner) && inner[i] >= '0' && inner[i] <= '7' {
				val = val*8 + int(inner[i]-'0')
				i++
				digits++
			}
			i--
			out = append(out, byte(val))
			continue
		}
		b, ok := escapeTable(e)
		if !ok {
			return "", fmt.Errorf("quotepath: unknown escape \\%c in %q", e, token)
		}
		out = append(out, b)
	}
	return string(out), nil
}

// escapeTable is git's single-character escape set, exactly as quote.c
// defines it.
func escapeTable(e byte) (byte, bool) {
	switch e {
	case 'a':
		return '\a', true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	case 'v':
		return '\v', true
	case '\\':
		return '\\', true
	case '"':
		return '"', true
	default:
		return 0, false
	}
}
