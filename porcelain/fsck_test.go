package porcelain

import (
	"errors"
	"testing"
)

func TestParseFsck(t *testing.T) {
	out := "dangling commit " + shaA + "\n" +
		"missing blob " + shaB + "\n" +
		"unreachable tree " + shaA + "\n" +
		"root " + shaB + "\n" +
		"tagged commit " + shaA + " (v1.0.0) in " + shaB + "\n"
	result, err := ParseFsck(out)
	if err != nil {
		t.Fatalf("ParseFsck returned error: %v", err)
	}

	if len(result.Dangling) != 1 || result.Dangling[0].Type != CommitObject || result.Dangling[0].SHA != shaA {
		t.Errorf("dangling = %+v", result.Dangling)
	}
	if len(result.Missing) != 1 || result.Missing[0].Type != BlobObject {
		t.Errorf("missing = %+v", result.Missing)
	}
	if len(result.Unreachable) != 1 || result.Unreachable[0].Type != TreeObject {
		t.Errorf("unreachable = %+v", result.Unreachable)
	}
	if len(result.Root) != 1 || result.Root[0].SHA != shaB {
		t.Errorf("root = %+v", result.Root)
	}
	tagged := result.Tagged
	if len(tagged) != 1 || tagged[0].Name != "v1.0.0" || tagged[0].In != shaB {
		t.Errorf("tagged = %+v", tagged)
	}
	if !result.AnyIssues() {
		t.Error("dangling/missing/unreachable objects are issues")
	}
}

func TestParseFsckNamedDangling(t *testing.T) {
	out := "dangling commit " + shaA + " (HEAD~2^2:src/)\n"
	result, err := ParseFsck(out)
	if err != nil {
		t.Fatalf("ParseFsck returned error: %v", err)
	}
	object := result.Dangling[0]
	if object.Type != CommitObject || object.SHA != shaA || object.Name != "HEAD~2^2:src/" {
		t.Errorf("object = %+v", object)
	}
}

func TestParseFsckWarnings(t *testing.T) {
	out := "warning in commit " + shaA + ": missingTaggerEntry: invalid format\n"
	result, err := ParseFsck(out)
	if err != nil {
		t.Fatalf("ParseFsck returned error: %v", err)
	}
	warning := result.Warnings[0]
	if warning.Type != CommitObject || warning.SHA != shaA {
		t.Errorf("warning = %+v", warning)
	}
	if warning.Message != "missingTaggerEntry: invalid format" {
		t.Errorf("message = %q", warning.Message)
	}
	if !result.AnyIssues() {
		t.Error("warnings count as issues")
	}
}

func TestParseFsckInformationalOnly(t *testing.T) {
	result, err := ParseFsck("root " + shaA + "\ntagged commit " + shaB + " (v2) in " + shaA + "\n")
	if err != nil {
		t.Fatalf("ParseFsck returned error: %v", err)
	}
	if result.AnyIssues() {
		t.Error("root and tagged are informational, not issues")
	}
}

func TestParseFsckClean(t *testing.T) {
	result, err := ParseFsck("")
	if err != nil {
		t.Fatalf("ParseFsck returned error: %v", err)
	}
	if result.AnyIssues() {
		t.Error("empty report has no issues")
	}
}

func TestParseFsckMalformed(t *testing.T) {
	tests := []struct {
		name string
		out  string
	}{
		{name: "unknown category", out: "exploded commit " + shaA + "\n"},
		{name: "bad sha", out: "dangling commit nothex\n"},
		{name: "unknown type", out: "dangling gizmo " + shaA + "\n"},
	}
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			var parseErr *ParseError
			if _, err := ParseFsck(testCase.out); !errors.As(err, &parseErr) {
				t.Fatalf("error = %v, want *ParseError", err)
			}
		})
	}
}
