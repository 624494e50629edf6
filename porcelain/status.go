package porcelain

import (
	"strconv"
	"strings"

	"github.com/gorewood/gitcmd/quotepath"
)

// StatusEntry is the recorded state of one path from a porcelain-v2 status
// report.
//
// The mode/SHA fields are surfaced exactly as the report encodes them:
// "000000" modes and all-zero ids stay verbatim, because the format itself
// cannot always distinguish "absent side" from "zeroed side". In
// particular, staging a change and then deleting the file in the worktree
// collapses into a line that cannot tell "staged content differs from HEAD"
// apart from "staged content is simply new" — that ambiguity belongs to the
// report, and the parser does not guess a richer state.
type StatusEntry struct {
	Path string
	// OrigPath is the rename/copy origin, set only for rename entries.
	OrigPath string
	// Index and Worktree are the raw XY state letters ('.' = unchanged).
	Index    byte
	Worktree byte
	// Type is the single-letter change code: the index-side letter when
	// the index side changed, otherwise the worktree-side letter. Empty
	// for untracked and ignored paths.
	Type string
	// Similarity is the rename score for rename entries.
	Similarity int
	Untracked  bool
	Ignored    bool
	// Submodule is the 4-character submodule state field (e.g. "N...").
	Submodule string
	// HEAD ("repo") side, index side, and worktree modes plus the ids of
	// the HEAD and index sides, verbatim from the report.
	ModeHead     string
	ModeIndex    string
	ModeWorktree string
	SHAHead      string
	SHAIndex     string
	// Conflict carries the three merge stages for unmerged paths.
	Conflict *ConflictInfo
}

// ConflictInfo is the per-stage detail of an unmerged path: stage 1 is the
// common ancestor, stage 2 "ours", stage 3 "theirs".
type ConflictInfo struct {
	Modes [3]string
	SHAs  [3]string
}

// BranchInfo is the header metadata of a status report requested with
// --branch.
type BranchInfo struct {
	OID      string
	Head     string
	Upstream string
	Ahead    int
	Behind   int
}

// StatusResult maps each reported path to its entry.
type StatusResult struct {
	Branch  BranchInfo
	Entries map[string]*StatusEntry
}

// ParseStatus decodes `git status --porcelain=v2 --branch` output.
//
// The report is two-phase: header lines carrying branch metadata, then one
// entry line per path in two shapes — a change line with stage, mode, and
// id fields, or a bare untracked/ignored path line. Entry lines tokenize
// into fixed fields up to the path; the remainder is taken verbatim (paths
// may contain spaces) and decoded through quotepath.
func ParseStatus(out string) (*StatusResult, error) {
	result := &StatusResult{Entries: make(map[string]*StatusEntry)}
	for lineNum, line := range splitLines(out) {
		if line == "" {
			continue
		}
		if err := parseStatusLine(result, out, line, lineNum+1); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func parseStatusLine(result *StatusResult, out, line string, lineNum int) error {
	switch line[0] {
	case '#':
		parseStatusHeader(&result.Branch, line)
		return nil
	case '1':
		return parseOrdinaryEntry(result, out, line, lineNum)
	case '2':
		return parseRenameEntry(result, out, line, lineNum)
	case 'u':
		return parseUnmergedEntry(result, out, line, lineNum)
	case '?', '!':
		return parseBareEntry(result, out, line, lineNum)
	default:
		return parseErrorf(out, line, lineNum, "unknown status entry kind %q", line[:1])
	}
}

func parseStatusHeader(branch *BranchInfo, line string) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return
	}
	switch fields[1] {
	case "branch.oid":
		branch.OID = fields[2]
	case "branch.head":
		branch.Head = fields[2]
	case "branch.upstream":
		branch.Upstream = fields[2]
	case "branch.ab":
		if len(fields) >= 4 {
			branch.Ahead, _ = strconv.Atoi(strings.TrimPrefix(fields[2], "+"))
			behind, _ := strconv.Atoi(strings.TrimPrefix(fields[3], "-"))
			branch.Behind = behind
		}
	}
}

// 1 <XY> <sub> <mH> <mI> <mW> <hH> <hI> <path>
func parseOrdinaryEntry(result *StatusResult, out, line string, lineNum int) error {
	fields := strings.SplitN(line, " ", 9)
	if len(fields) != 9 {
		return parseErrorf(out, line, lineNum, "want 9 fields in ordinary entry, got %d", len(fields))
	}
	path, err := quotepath.Unquote(fields[8])
	if err != nil {
		return parseErrorf(out, line, lineNum, "%v", err)
	}
	entry := &StatusEntry{
		Path:         path,
		Submodule:    fields[2],
		ModeHead:     fields[3],
		ModeIndex:    fields[4],
		ModeWorktree: fields[5],
		SHAHead:      fields[6],
		SHAIndex:     fields[7],
	}
	if err := applyXY(entry, fields[1]); err != nil {
		return parseErrorf(out, line, lineNum, "%v", err)
	}
	result.Entries[path] = entry
	return nil
}

// 2 <XY> <sub> <mH> <mI> <mW> <hH> <hI> <X><score> <path>\t<origPath>
func parseRenameEntry(result *StatusResult, out, line string, lineNum int) error {
	fields := strings.SplitN(line, " ", 10)
	if len(fields) != 10 {
		return parseErrorf(out, line, lineNum, "want 10 fields in rename entry, got %d", len(fields))
	}
	pathPair, origTok, ok := strings.Cut(fields[9], "\t")
	if !ok {
		return parseErrorf(out, line, lineNum, "rename entry missing origin path")
	}
	path, err := quotepath.Unquote(pathPair)
	if err != nil {
		return parseErrorf(out, line, lineNum, "%v", err)
	}
	origPath, err := quotepath.Unquote(origTok)
	if err != nil {
		return parseErrorf(out, line, lineNum, "%v", err)
	}

	score := fields[8]
	similarity := 0
	if len(score) > 1 {
		similarity, _ = strconv.Atoi(score[1:])
	}

	entry := &StatusEntry{
		Path:         path,
		OrigPath:     origPath,
		Similarity:   similarity,
		Submodule:    fields[2],
		ModeHead:     fields[3],
		ModeIndex:    fields[4],
		ModeWorktree: fields[5],
		SHAHead:      fields[6],
		SHAIndex:     fields[7],
	}
	if err := applyXY(entry, fields[1]); err != nil {
		return parseErrorf(out, line, lineNum, "%v", err)
	}
	result.Entries[path] = entry
	return nil
}

// u <XY> <sub> <m1> <m2> <m3> <mW> <h1> <h2> <h3> <path>
func parseUnmergedEntry(result *StatusResult, out, line string, lineNum int) error {
	fields := strings.SplitN(line, " ", 11)
	if len(fields) != 11 {
		return parseErrorf(out, line, lineNum, "want 11 fields in unmerged entry, got %d", len(fields))
	}
	path, err := quotepath.Unquote(fields[10])
	if err != nil {
		return parseErrorf(out, line, lineNum, "%v", err)
	}
	entry := &StatusEntry{
		Path:         path,
		Type:         "U",
		Submodule:    fields[2],
		ModeWorktree: fields[6],
		Conflict: &ConflictInfo{
			Modes: [3]string{fields[3], fields[4], fields[5]},
			SHAs:  [3]string{fields[7], fields[8], fields[9]},
		},
	}
	if len(fields[1]) == 2 {
		entry.Index = fields[1][0]
		entry.Worktree = fields[1][1]
	}
	result.Entries[path] = entry
	return nil
}

// ? <path> or ! <path>
func parseBareEntry(result *StatusResult, out, line string, lineNum int) error {
	if len(line) < 3 || line[1] != ' ' {
		return parseErrorf(out, line, lineNum, "malformed untracked entry")
	}
	path, err := quotepath.Unquote(line[2:])
	if err != nil {
		return parseErrorf(out, line, lineNum, "%v", err)
	}
	entry := &StatusEntry{Path: path}
	switch line[0] {
	case '?':
		entry.Untracked = true
	case '!':
		entry.Ignored = true
	}
	result.Entries[path] = entry
	return nil
}

// applyXY records the raw two-letter state and derives the single-letter
// change code, preferring the index side.
func applyXY(entry *StatusEntry, xy string) error {
	if len(xy) != 2 {
		return errString("bad XY field " + strconv.Quote(xy))
	}
	entry.Index = xy[0]
	entry.Worktree = xy[1]
	switch {
	case xy[0] != '.':
		entry.Type = string(xy[0])
	case xy[1] != '.':
		entry.Type = string(xy[1])
	}
	return nil
}
