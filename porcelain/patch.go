package porcelain

import (
	"strconv"
	"strings"

	"github.com/gorewood/gitcmd/quotepath"
)

// ParsePatch decodes a unified-diff listing (`git diff` without --raw) into
// a DiffResult, one entry per `diff --git` block.
//
// The patch listing represents a logical type change as two independent
// blocks — a deleted file and an added file for the same path — and the
// parser preserves that: it never merges them into one TypeChanged entry.
// That unification exists only in the raw format (see ParseRaw).
//
// Insertions and deletions are counted from the hunk body; binary blocks
// ("Binary files ... differ" or "GIT binary patch") report zero counts.
// The "---"/"+++" file markers appear only between the header and the first
// hunk, so a removed line whose content starts with "--" (or an added line
// starting with "++") inside a hunk still counts.
func ParsePatch(out string) (*DiffResult, error) {
	result := &DiffResult{}
	var entry *DiffEntry
	inHunk := false
	flush := func() {
		if entry != nil {
			result.Entries = append(result.Entries, *entry)
			entry = nil
		}
	}

	for lineNum, line := range splitLines(out) {
		if strings.HasPrefix(line, "diff --git ") {
			flush()
			inHunk = false
			aPath, bPath, err := parseHeaderPaths(strings.TrimPrefix(line, "diff --git "))
			if err != nil {
				return nil, parseErrorf(out, line, lineNum+1, "%v", err)
			}
			entry = &DiffEntry{
				Status: Modified,
				Path:   bPath,
				Src:    &FileRef{Path: aPath},
				Dst:    &FileRef{Path: bPath},
			}
			continue
		}
		if entry == nil {
			return nil, parseErrorf(out, line, lineNum+1, "content before first diff header")
		}
		if err := parsePatchLine(entry, line, &inHunk); err != nil {
			return nil, parseErrorf(out, line, lineNum+1, "%v", err)
		}
	}
	flush()
	result.recompute()
	return result, nil
}

func parsePatchLine(entry *DiffEntry, line string, inHunk *bool) error {
	if strings.HasPrefix(line, "@@") {
		*inHunk = true
		return nil
	}
	if *inHunk {
		// Hunk body: everything is content. Context lines and
		// "\ No newline at end of file" fall through uncounted.
		switch {
		case strings.HasPrefix(line, "+"):
			entry.Insertions++
		case strings.HasPrefix(line, "-"):
			entry.Deletions++
		}
		return nil
	}
	switch {
	case strings.HasPrefix(line, "old mode "):
		entry.Src.Mode = strings.TrimPrefix(line, "old mode ")
	case strings.HasPrefix(line, "new mode "):
		entry.Dst.Mode = strings.TrimPrefix(line, "new mode ")
	case strings.HasPrefix(line, "new file mode "):
		entry.Status = Added
		entry.Dst.Mode = strings.TrimPrefix(line, "new file mode ")
		entry.Src = nil
	case strings.HasPrefix(line, "deleted file mode "):
		entry.Status = Deleted
		entry.Src.Mode = strings.TrimPrefix(line, "deleted file mode ")
		entry.Path = entry.Src.Path
		entry.Dst = nil
	case strings.HasPrefix(line, "similarity index "):
		score := strings.TrimSuffix(strings.TrimPrefix(line, "similarity index "), "%")
		value, err := strconv.Atoi(score)
		if err != nil {
			return errString("bad similarity index " + strconv.Quote(score))
		}
		entry.Similarity = value
	case strings.HasPrefix(line, "dissimilarity index "):
		// Rewrites (-B); nothing to record.
	case strings.HasPrefix(line, "rename from "):
		entry.Status = Renamed
		return setPatchOrigin(entry, strings.TrimPrefix(line, "rename from "))
	case strings.HasPrefix(line, "rename to "):
		entry.Status = Renamed
		return setPatchDestination(entry, strings.TrimPrefix(line, "rename to "))
	case strings.HasPrefix(line, "copy from "):
		entry.Status = Copied
		return setPatchOrigin(entry, strings.TrimPrefix(line, "copy from "))
	case strings.HasPrefix(line, "copy to "):
		entry.Status = Copied
		return setPatchDestination(entry, strings.TrimPrefix(line, "copy to "))
	case strings.HasPrefix(line, "index "):
		parseIndexLine(entry, strings.TrimPrefix(line, "index "))
	case strings.HasPrefix(line, "Binary files "), line == "GIT binary patch":
		entry.Binary = true
		entry.Insertions = 0
		entry.Deletions = 0
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		// File markers, already known from the header.
	default:
		// Binary patch payload, mode-only noise.
	}
	return nil
}

func setPatchOrigin(entry *DiffEntry, token string) error {
	path, err := quotepath.Unquote(token)
	if err != nil {
		return err
	}
	if entry.Src == nil {
		entry.Src = &FileRef{}
	}
	entry.Src.Path = path
	if path != entry.Path {
		entry.SrcPath = path
	}
	return nil
}

func setPatchDestination(entry *DiffEntry, token string) error {
	path, err := quotepath.Unquote(token)
	if err != nil {
		return err
	}
	if entry.Dst == nil {
		entry.Dst = &FileRef{}
	}
	entry.Dst.Path = path
	entry.Path = path
	if entry.Src != nil && entry.Src.Path != path {
		entry.SrcPath = entry.Src.Path
	}
	return nil
}

// parseIndexLine fills SHAs (and a shared mode) from `index old..new [mode]`.
func parseIndexLine(entry *DiffEntry, rest string) {
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return
	}
	oldSHA, newSHA, ok := strings.Cut(fields[0], "..")
	if ok {
		if entry.Src != nil {
			entry.Src.SHA = oldSHA
		}
		if entry.Dst != nil {
			entry.Dst.SHA = newSHA
		}
	}
	if len(fields) == 2 {
		if entry.Src != nil && entry.Src.Mode == "" {
			entry.Src.Mode = fields[1]
		}
		if entry.Dst != nil && entry.Dst.Mode == "" {
			entry.Dst.Mode = fields[1]
		}
	}
}

// parseHeaderPaths splits the `a/<path> b/<path>` tail of a diff --git
// header. Quoted tokens are decoded; for unquoted tokens with spaces the
// split point is the last " b/" marker, which the rename/copy body lines
// correct if the heuristic guesses wrong.
func parseHeaderPaths(rest string) (string, string, error) {
	if strings.HasPrefix(rest, `"`) {
		aTok, remainder, err := takeQuoted(rest)
		if err != nil {
			return "", "", err
		}
		bTok := strings.TrimSpace(remainder)
		aPath, err := quotepath.Unquote(aTok)
		if err != nil {
			return "", "", err
		}
		bPath, err := quotepath.Unquote(bTok)
		if err != nil {
			return "", "", err
		}
		return strings.TrimPrefix(aPath, "a/"), strings.TrimPrefix(bPath, "b/"), nil
	}

	split := strings.LastIndex(rest, " b/")
	if split < 0 || !strings.HasPrefix(rest, "a/") {
		return "", "", errString("malformed diff --git header " + strconv.Quote(rest))
	}
	return rest[2:split], rest[split+3:], nil
}

// takeQuoted consumes one double-quoted token (escapes respected) and
// returns it with the remainder of the string.
func takeQuoted(s string) (string, string, error) {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return s[:i+1], s[i+1:], nil
		}
	}
	return "", "", errString("unterminated quoted path " + strconv.Quote(s))
}
