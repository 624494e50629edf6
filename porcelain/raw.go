package porcelain

import (
	"strconv"
	"strings"

	"github.com/gorewood/gitcmd/quotepath"
)

// ParseRaw decodes `git diff --raw` records into a DiffResult.
//
// Each record looks like
//
//	:100644 100644 <sha> <sha> M\tpath
//	:100644 100644 <sha> <sha> R86\told\tnew
//
// Paths may contain spaces but never unescaped tabs, so records tokenize on
// tabs first; the leading field then splits on whitespace into modes, ids,
// and the status letter. A type change is a single record whose two modes
// differ (contrast ParsePatch, where the same logical change arrives as a
// delete plus an add).
//
// Line counts are not part of the raw format; correlate a numstat stream
// with ApplyNumstat to fill them in.
func ParseRaw(out string) (*DiffResult, error) {
	result := &DiffResult{}
	for lineNum, line := range splitLines(out) {
		if line == "" {
			continue
		}
		entry, err := parseRawRecord(out, line, lineNum+1)
		if err != nil {
			return nil, err
		}
		result.Entries = append(result.Entries, *entry)
	}
	result.recompute()
	return result, nil
}

func parseRawRecord(out, line string, lineNum int) (*DiffEntry, error) {
	if line[0] != ':' {
		return nil, parseErrorf(out, line, lineNum, "raw record must start with ':'")
	}
	tabFields := strings.Split(line, "\t")
	head := strings.Fields(tabFields[0][1:])
	if len(head) != 5 {
		return nil, parseErrorf(out, line, lineNum, "want 5 header fields, got %d", len(head))
	}
	modeSrc, modeDst, shaSrc, shaDst, statusTok := head[0], head[1], head[2], head[3], head[4]

	status, similarity, err := parseStatusToken(statusTok)
	if err != nil {
		return nil, parseErrorf(out, line, lineNum, "%v", err)
	}

	wantPaths := 1
	if status == Renamed || status == Copied {
		wantPaths = 2
	}
	if len(tabFields)-1 != wantPaths {
		return nil, parseErrorf(out, line, lineNum, "want %d path(s), got %d", wantPaths, len(tabFields)-1)
	}

	paths := make([]string, 0, wantPaths)
	for _, token := range tabFields[1:] {
		path, err := quotepath.Unquote(token)
		if err != nil {
			return nil, parseErrorf(out, line, lineNum, "%v", err)
		}
		paths = append(paths, path)
	}

	entry := &DiffEntry{Status: status, Similarity: similarity}
	srcPath, dstPath := paths[0], paths[0]
	if wantPaths == 2 {
		dstPath = paths[1]
	}
	entry.Path = dstPath
	if (status == Renamed || status == Copied) && srcPath != dstPath {
		entry.SrcPath = srcPath
	}

	if status != Added {
		entry.Src = &FileRef{Path: srcPath, Mode: modeSrc, SHA: shaSrc}
	}
	if status != Deleted {
		entry.Dst = &FileRef{Path: dstPath, Mode: modeDst, SHA: shaDst}
	}
	return entry, nil
}

// parseStatusToken splits a raw status token like "M" or "R100" into the
// status and an optional similarity score.
func parseStatusToken(token string) (DiffStatus, int, error) {
	if token == "" {
		return 0, 0, errString("empty status token")
	}
	status, ok := statusLetter(token[0])
	if !ok {
		return 0, 0, errString("unknown status letter " + strconv.Quote(token[:1]))
	}
	if len(token) == 1 {
		return status, 0, nil
	}
	if status != Renamed && status != Copied {
		return 0, 0, errString("score on non-rename status " + strconv.Quote(token))
	}
	score, err := strconv.Atoi(token[1:])
	if err != nil || score < 1 || score > 100 {
		return 0, 0, errString("bad similarity score " + strconv.Quote(token))
	}
	return status, score, nil
}

func statusLetter(letter byte) (DiffStatus, bool) {
	switch letter {
	case 'M':
		return Modified, true
	case 'A':
		return Added, true
	case 'D':
		return Deleted, true
	case 'R':
		return Renamed, true
	case 'C':
		return Copied, true
	case 'T':
		return TypeChanged, true
	case 'U':
		return Unmerged, true
	default:
		return 0, false
	}
}

// errString is a trivial error for token-level diagnostics that get wrapped
// into a ParseError with full line context.
type errString string

func (e errString) Error() string { return string(e) }

// splitLines splits output on newlines, dropping a trailing empty line.
func splitLines(out string) []string {
	lines := strings.Split(out, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
