package porcelain

import (
	"errors"
	"testing"
)

func TestParseDirstat(t *testing.T) {
	out := "  40.5% src/parser/\n" +
		"  30.1% src/\n" +
		"  29.3% docs/\n"
	entries, err := ParseDirstat(out)
	if err != nil {
		t.Fatalf("ParseDirstat returned error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	if entries[0].Directory != "src/parser/" || entries[0].Percent != 40.5 {
		t.Errorf("first entry = %+v", entries[0])
	}
	// Emission order carries the tool's own sort; it must survive.
	if entries[1].Directory != "src/" || entries[2].Directory != "docs/" {
		t.Error("entries reordered")
	}
}

func TestParseDirstatMalformed(t *testing.T) {
	var parseErr *ParseError
	if _, err := ParseDirstat("nonsense line\n"); !errors.As(err, &parseErr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if _, err := ParseDirstat("xx% src/\n"); !errors.As(err, &parseErr) {
		t.Fatalf("want *ParseError for bad percent")
	}
}
