package porcelain

import (
	"strconv"
	"strings"
)

// ParseDirstat decodes `git diff --dirstat` output: one `<percent>% <dir>/`
// line per directory. Emission order is preserved as-is — it reflects the
// tool's own sort (cumulative vs per-directory is the caller's flag choice)
// and nothing is re-aggregated here.
func ParseDirstat(out string) ([]DirstatEntry, error) {
	var entries []DirstatEntry
	for lineNum, line := range splitLines(out) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		percentStr, dir, ok := strings.Cut(trimmed, "% ")
		if !ok {
			return nil, parseErrorf(out, line, lineNum+1, "want `<percent>%% <dir>/`")
		}
		percent, err := strconv.ParseFloat(percentStr, 64)
		if err != nil {
			return nil, parseErrorf(out, line, lineNum+1, "bad percentage %q", percentStr)
		}
		entries = append(entries, DirstatEntry{Directory: dir, Percent: percent})
	}
	return entries, nil
}
