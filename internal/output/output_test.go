package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestPrinter_JSON_Error(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false) // json=true, color=false

	exitErr := NewUserError("invalid revision: -rf")
	printer.Error(exitErr)

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, buf.String())
	}

	if result["error"] != "invalid revision: -rf" {
		t.Errorf("error = %v, want %q", result["error"], "invalid revision: -rf")
	}
	if code, ok := result["code"].(float64); !ok || int(code) != ExitUserError {
		t.Errorf("code = %v, want %d", result["code"], ExitUserError)
	}
}

func TestPrinter_Human_Error(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	exitErr := NewUserError("invalid revision: -rf")
	printer.Error(exitErr)

	output := buf.String()
	if !strings.Contains(output, "Error") {
		t.Errorf("output should contain 'Error': %q", output)
	}
	if !strings.Contains(output, "invalid revision: -rf") {
		t.Errorf("output should contain error message: %q", output)
	}
}

func TestPrinter_WithStderr_SplitsStreams(t *testing.T) {
	var out, errOut bytes.Buffer
	printer := NewPrinter(&out, false, false).WithStderr(&errOut)

	printer.Error(NewSystemError("git was killed"))

	if out.Len() != 0 {
		t.Errorf("stdout should stay clean for human errors: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "git was killed") {
		t.Errorf("stderr = %q, want error message", errOut.String())
	}
}

func TestPrinter_JSON_ErrorStaysOnStdout(t *testing.T) {
	var out, errOut bytes.Buffer
	printer := NewPrinter(&out, true, false).WithStderr(&errOut)

	printer.Error(NewFindingsError("working tree has uncommitted changes"))

	if errOut.Len() != 0 {
		t.Errorf("JSON errors belong on stdout, stderr = %q", errOut.String())
	}
	var result map[string]any
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, out.String())
	}
	if code, ok := result["code"].(float64); !ok || int(code) != ExitFindings {
		t.Errorf("code = %v, want %d", result["code"], ExitFindings)
	}
}

func TestPrinter_WriteJSON(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	err := printer.WriteJSON(map[string]any{"branch": "main", "clean": true})
	if err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, buf.String())
	}
	if result["branch"] != "main" || result["clean"] != true {
		t.Errorf("result = %v", result)
	}
}

func TestPrinter_Print(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	printer.Print("%d files changed", 3)

	if buf.String() != "3 files changed" {
		t.Errorf("output = %q, want %q", buf.String(), "3 files changed")
	}
}

func TestPrinter_Println(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	printer.Println("Working tree clean")

	if buf.String() != "Working tree clean\n" {
		t.Errorf("output = %q, want %q", buf.String(), "Working tree clean\n")
	}
}

func TestPrinter_IsJSON(t *testing.T) {
	var buf bytes.Buffer

	jsonPrinter := NewPrinter(&buf, true, false)
	if !jsonPrinter.IsJSON() {
		t.Error("IsJSON() should return true for JSON printer")
	}

	humanPrinter := NewPrinter(&buf, false, false)
	if humanPrinter.IsJSON() {
		t.Error("IsJSON() should return false for human printer")
	}
}

func TestPrinter_Warn_Human(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	printer.Warn("working tree has %s", "uncommitted changes")

	output := buf.String()
	if !strings.Contains(output, "Warning") {
		t.Errorf("output should contain 'Warning': %q", output)
	}
	if !strings.Contains(output, "uncommitted changes") {
		t.Errorf("output should contain message: %q", output)
	}
}

func TestPrinter_Warn_JSON(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	printer.Warn("dirty tree")

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, buf.String())
	}
	if result["warning"] != "dirty tree" {
		t.Errorf("warning = %v, want %q", result["warning"], "dirty tree")
	}
}

func TestPrinter_Section(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	printer.Section("Branch")

	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 || lines[0] != "" {
		t.Fatalf("section should start with a blank line: %q", buf.String())
	}
	if lines[1] != "Branch" {
		t.Errorf("title line = %q, want Branch", lines[1])
	}
	if lines[2] != strings.Repeat("─", len("Branch")) {
		t.Errorf("rule line = %q, want a rule matching the title width", lines[2])
	}
}

func TestPrinter_KeyValue(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	printer.KeyValue("Name", "main")

	if buf.String() != "Name: main\n" {
		t.Errorf("output = %q, want %q", buf.String(), "Name: main\n")
	}
}

func TestPrinter_Table(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	printer.Table(
		[]string{"Status", "Path"},
		[][]string{
			{"modified", "a.txt"},
			{"added", "dir/long-name.txt"},
		},
	)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	want := []string{
		"Status    Path",
		"modified  a.txt",
		"added     dir/long-name.txt",
	}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q, want %d rows", lines, len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestPrinter_Table_NoHeadersNoOutput(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	printer.Table(nil, [][]string{{"stray"}})

	if buf.Len() != 0 {
		t.Errorf("table without headers should print nothing: %q", buf.String())
	}
}
