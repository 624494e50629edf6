package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Printer renders command results. JSON mode writes one object to the main
// writer; human mode renders the sections, key/value pairs, and column views
// the status, diff, and fsck reports are built from. Errors and warnings go
// to the error writer in human mode so report output stays pipeable.
type Printer struct {
	out    io.Writer
	errOut io.Writer
	json   bool
	style  styleSet
}

// styleSet carries the handful of lipgloss styles the reports need. The
// zero value renders everything unstyled.
type styleSet struct {
	err    lipgloss.Style
	warn   lipgloss.Style
	header lipgloss.Style
	rule   lipgloss.Style
	key    lipgloss.Style
	col    lipgloss.Style
}

func coloredStyles() styleSet {
	return styleSet{
		err:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		warn:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		rule:   lipgloss.NewStyle().Faint(true),
		key:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		col:    lipgloss.NewStyle().Bold(true),
	}
}

// NewPrinter creates a Printer writing to w. jsonMode selects structured
// output; color enables styling.
func NewPrinter(w io.Writer, jsonMode, color bool) *Printer {
	p := &Printer{out: w, errOut: w, json: jsonMode}
	if color {
		p.style = coloredStyles()
	}
	return p
}

// WithStderr routes human-mode errors and warnings to w. JSON mode keeps
// everything on the main writer so drivers read one stream. Returns the
// printer for chaining.
func (p *Printer) WithStderr(w io.Writer) *Printer {
	p.errOut = w
	return p
}

// IsJSON reports whether the printer is in JSON mode.
func (p *Printer) IsJSON() bool {
	return p.json
}

// WriteJSON writes data as one indented JSON object.
func (p *Printer) WriteJSON(data any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// Error reports a failure. JSON mode emits {"error": message, "code": N} on
// the main writer; human mode writes a styled line to the error writer.
func (p *Printer) Error(err error) {
	if p.json {
		_ = p.WriteJSON(map[string]any{"error": err.Error(), "code": GetExitCode(err)})
		return
	}
	fmt.Fprintf(p.errOut, "%s: %s\n", p.style.err.Render("Error"), err.Error())
}

// Warn reports a non-fatal problem, such as an fsck warning line.
func (p *Printer) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.json {
		_ = p.WriteJSON(map[string]any{"warning": msg})
		return
	}
	fmt.Fprintf(p.errOut, "%s: %s\n", p.style.warn.Render("Warning"), msg)
}

// Print formats and writes to the output without a newline.
func (p *Printer) Print(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Println writes a line to the output.
func (p *Printer) Println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

// Section starts a titled report block: a blank separator line, the title,
// and an underline rule of the same width.
func (p *Printer) Section(title string) {
	fmt.Fprintf(p.out, "\n%s\n%s\n",
		p.style.header.Render(title),
		p.style.rule.Render(strings.Repeat("─", len(title))))
}

// KeyValue renders one "Key: value" line, used for branch metadata.
func (p *Printer) KeyValue(key, value string) {
	fmt.Fprintf(p.out, "%s %s\n", p.style.key.Render(key+":"), value)
}

// Table renders rows under styled headers with two-space gutters. Columns
// size to their widest cell; the last column stays ragged so plain output
// carries no trailing spaces.
func (p *Printer) Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var line strings.Builder
	for i, h := range headers {
		if i > 0 {
			line.WriteString("  ")
		}
		line.WriteString(p.style.col.Render(pad(h, widths[i], i == len(headers)-1)))
	}
	fmt.Fprintln(p.out, line.String())

	for _, row := range rows {
		line.Reset()
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if i > 0 {
				line.WriteString("  ")
			}
			line.WriteString(pad(cell, widths[i], i == len(row)-1))
		}
		fmt.Fprintln(p.out, line.String())
	}
}

// pad right-pads cell to width, except in the last column.
func pad(cell string, width int, last bool) string {
	if last || len(cell) >= width {
		return cell
	}
	return cell + strings.Repeat(" ", width-len(cell))
}
