package porcelain

import (
	"errors"
	"testing"
)

const statusFixture = `# branch.oid aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa
# branch.head main
# branch.upstream origin/main
# branch.ab +2 -1
1 .M N... 100644 100644 100644 aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa src/main.go
1 A. N... 000000 100644 100644 0000000000000000000000000000000000000000 bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb new file.txt
2 R. N... 100644 100644 100644 aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa R100 b.txt	a.txt
u UU N... 100644 100644 100644 100644 aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb cccccccccccccccccccccccccccccccccccccccc conflicted.go
? untracked.txt
! ignored.log
`

func TestParseStatusBranchHeader(t *testing.T) {
	result, err := ParseStatus(statusFixture)
	if err != nil {
		t.Fatalf("ParseStatus returned error: %v", err)
	}
	branch := result.Branch
	if branch.OID != shaA || branch.Head != "main" || branch.Upstream != "origin/main" {
		t.Errorf("branch = %+v", branch)
	}
	if branch.Ahead != 2 || branch.Behind != 1 {
		t.Errorf("ahead/behind = %d/%d, want 2/1", branch.Ahead, branch.Behind)
	}
}

func TestParseStatusOrdinary(t *testing.T) {
	result, err := ParseStatus(statusFixture)
	if err != nil {
		t.Fatalf("ParseStatus returned error: %v", err)
	}

	modified := result.Entries["src/main.go"]
	if modified == nil {
		t.Fatal("missing entry for src/main.go")
	}
	if modified.Index != '.' || modified.Worktree != 'M' || modified.Type != "M" {
		t.Errorf("entry = %+v, want worktree-modified", modified)
	}
	if modified.ModeHead != "100644" || modified.ModeIndex != "100644" || modified.SHAIndex != shaA {
		t.Errorf("modes/shas = %+v", modified)
	}

	// Path remainder is taken verbatim; spaces survive.
	added := result.Entries["new file.txt"]
	if added == nil {
		t.Fatal("missing entry for path with spaces")
	}
	if added.Type != "A" {
		t.Errorf("type = %q, want A", added.Type)
	}
	// The report encodes the absent HEAD side as zeroed fields; they are
	// surfaced verbatim, not cleaned up.
	if added.ModeHead != "000000" || added.SHAHead != zero {
		t.Errorf("added entry HEAD side = %s/%s, want zeroed as reported", added.ModeHead, added.SHAHead)
	}
}

func TestParseStatusRename(t *testing.T) {
	result, err := ParseStatus(statusFixture)
	if err != nil {
		t.Fatalf("ParseStatus returned error: %v", err)
	}
	renamed := result.Entries["b.txt"]
	if renamed == nil {
		t.Fatal("missing rename entry")
	}
	if renamed.OrigPath != "a.txt" || renamed.Similarity != 100 || renamed.Type != "R" {
		t.Errorf("rename entry = %+v", renamed)
	}
}

func TestParseStatusUnmerged(t *testing.T) {
	result, err := ParseStatus(statusFixture)
	if err != nil {
		t.Fatalf("ParseStatus returned error: %v", err)
	}
	conflicted := result.Entries["conflicted.go"]
	if conflicted == nil {
		t.Fatal("missing unmerged entry")
	}
	if conflicted.Type != "U" || conflicted.Conflict == nil {
		t.Fatalf("entry = %+v, want unmerged with conflict info", conflicted)
	}
	if conflicted.Conflict.SHAs[0] != shaA || conflicted.Conflict.SHAs[2] != "cccccccccccccccccccccccccccccccccccccccc" {
		t.Errorf("stage shas = %+v", conflicted.Conflict.SHAs)
	}
}

func TestParseStatusUntrackedAndIgnored(t *testing.T) {
	result, err := ParseStatus(statusFixture)
	if err != nil {
		t.Fatalf("ParseStatus returned error: %v", err)
	}
	untracked := result.Entries["untracked.txt"]
	if untracked == nil || !untracked.Untracked || untracked.Type != "" {
		t.Errorf("untracked entry = %+v", untracked)
	}
	if untracked != nil && (untracked.ModeIndex != "" || untracked.SHAIndex != "") {
		t.Errorf("untracked entry must have absent sides, got %+v", untracked)
	}
	ignored := result.Entries["ignored.log"]
	if ignored == nil || !ignored.Ignored {
		t.Errorf("ignored entry = %+v", ignored)
	}
}

func TestParseStatusQuotedPath(t *testing.T) {
	out := "? \"file\\342\\230\\240skull.rb\"\n"
	result, err := ParseStatus(out)
	if err != nil {
		t.Fatalf("ParseStatus returned error: %v", err)
	}
	if _, ok := result.Entries["file☠skull.rb"]; !ok {
		t.Errorf("entries = %v, want decoded skull path", result.Entries)
	}
}

func TestParseStatusEmpty(t *testing.T) {
	result, err := ParseStatus("")
	if err != nil {
		t.Fatalf("ParseStatus returned error: %v", err)
	}
	if len(result.Entries) != 0 {
		t.Errorf("entries = %d, want 0", len(result.Entries))
	}
}

func TestParseStatusMalformed(t *testing.T) {
	tests := []struct {
		name string
		out  string
	}{
		{name: "unknown kind", out: "x whatever\n"},
		{name: "short ordinary", out: "1 .M N... 100644\n"},
		{name: "rename without origin", out: "2 R. N... 100644 100644 100644 " + shaA + " " + shaA + " R100 only.txt\n"},
	}
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			var parseErr *ParseError
			if _, err := ParseStatus(testCase.out); !errors.As(err, &parseErr) {
				t.Fatalf("error = %v, want *ParseError", err)
			}
		})
	}
}
