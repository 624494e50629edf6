package porcelain

import (
	"strconv"
	"strings"

	"github.com/gorewood/gitcmd/quotepath"
)

// NumstatEntry is one line of `git diff --numstat`: per-file insertion and
// deletion counts, with "-" counts marking binary content.
type NumstatEntry struct {
	Path       string
	SrcPath    string // rename/copy origin, when the line carries one
	Insertions int
	Deletions  int
	Binary     bool
}

// ParseNumstat decodes `git diff --numstat` output.
//
// Lines are `insertions<TAB>deletions<TAB>path`; binary files carry "-" in
// both count columns. Renames arrive either as a third tab-separated field
// pair or as an arrow path (`old => new`, possibly brace-abbreviated as
// `dir/{old => new}`).
func ParseNumstat(out string) ([]NumstatEntry, error) {
	var entries []NumstatEntry
	for lineNum, line := range splitLines(out) {
		if line == "" {
			continue
		}
		entry, err := parseNumstatLine(out, line, lineNum+1)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, nil
}

func parseNumstatLine(out, line string, lineNum int) (*NumstatEntry, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 3 && !(len(fields) == 5 && fields[2] == "") {
		return nil, parseErrorf(out, line, lineNum, "want 3 fields or a rename field pair, got %d", len(fields))
	}

	entry := &NumstatEntry{}
	if fields[0] == "-" && fields[1] == "-" {
		entry.Binary = true
	} else {
		var err error
		if entry.Insertions, err = strconv.Atoi(fields[0]); err != nil {
			return nil, parseErrorf(out, line, lineNum, "bad insertion count %q", fields[0])
		}
		if entry.Deletions, err = strconv.Atoi(fields[1]); err != nil {
			return nil, parseErrorf(out, line, lineNum, "bad deletion count %q", fields[1])
		}
	}

	if len(fields) == 5 {
		// Rename field pair: empty third field, then src and dst.
		src, err := quotepath.Unquote(fields[3])
		if err != nil {
			return nil, parseErrorf(out, line, lineNum, "%v", err)
		}
		dst, err := quotepath.Unquote(fields[4])
		if err != nil {
			return nil, parseErrorf(out, line, lineNum, "%v", err)
		}
		entry.SrcPath, entry.Path = src, dst
		return entry, nil
	}

	path, err := quotepath.Unquote(fields[2])
	if err != nil {
		return nil, parseErrorf(out, line, lineNum, "%v", err)
	}
	entry.SrcPath, entry.Path = splitArrowPath(path)
	return entry, nil
}

// splitArrowPath resolves rename paths of the forms `old => new` and
// `prefix/{old => new}/suffix`. Plain paths return an empty source.
func splitArrowPath(path string) (src, dst string) {
	open := strings.Index(path, "{")
	arrow := strings.Index(path, " => ")
	if arrow < 0 {
		return "", path
	}
	if open >= 0 && open < arrow {
		closing := strings.Index(path[arrow:], "}")
		if closing >= 0 {
			closing += arrow
			prefix := path[:open]
			oldPart := path[open+1 : arrow]
			newPart := path[arrow+4 : closing]
			suffix := path[closing+1:]
			return collapseSlashes(prefix + oldPart + suffix), collapseSlashes(prefix + newPart + suffix)
		}
	}
	return path[:arrow], path[arrow+4:]
}

// collapseSlashes fixes the `dir/{ => sub}/file` case where an empty brace
// side leaves a doubled separator.
func collapseSlashes(path string) string {
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	return path
}

// ApplyNumstat correlates numstat entries with the diff result's entries by
// path (or by the src→dst pair for renames) and fills in line counts. The
// two streams can be requested independently, so correlation is never by
// line order. Totals are recomputed afterwards.
func (r *DiffResult) ApplyNumstat(stats []NumstatEntry) {
	byPath := make(map[string]*DiffEntry, len(r.Entries))
	for i := range r.Entries {
		byPath[r.Entries[i].Path] = &r.Entries[i]
	}

	for _, stat := range stats {
		entry, ok := byPath[stat.Path]
		if !ok {
			continue
		}
		if stat.SrcPath != "" && entry.SrcPath != "" && stat.SrcPath != entry.SrcPath {
			// Same destination but different origin: not the same change.
			continue
		}
		if stat.Binary {
			entry.Binary = true
			entry.Insertions = 0
			entry.Deletions = 0
			continue
		}
		entry.Insertions = stat.Insertions
		entry.Deletions = stat.Deletions
	}
	r.recompute()
}
