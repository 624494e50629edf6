// Package main provides the entry point for the gitcmd CLI.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gorewood/gitcmd/internal/output"
	"github.com/gorewood/gitcmd/porcelain"
)

// newDiffCmd creates the diff command.
func newDiffCmd(flags *rootFlags) *cobra.Command {
	var numstatFlag, dirstatFlag, patchFlag bool
	cmd := &cobra.Command{
		Use:   "diff [from] [to] [-- path...]",
		Short: "Show changed files between revisions",
		Long: `Show the files changed between two revisions, or in the working tree when
no revisions are given, with per-file insertion and deletion counts.

Examples:
  gitcmd diff                     # Working tree vs index
  gitcmd diff HEAD~3 HEAD         # Between two revisions
  gitcmd diff main -- src/        # Limited to a path
  gitcmd diff --numstat HEAD~1    # Counts only
  gitcmd diff --dirstat HEAD~1    # Per-directory distribution`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := diffModeRaw
			switch {
			case numstatFlag:
				mode = diffModeNumstat
			case dirstatFlag:
				mode = diffModeDirstat
			case patchFlag:
				mode = diffModePatch
			}
			return runDiff(cmd, flags, mode, args)
		},
	}
	cmd.Flags().BoolVar(&numstatFlag, "numstat", false, "Show per-file counts only")
	cmd.Flags().BoolVar(&dirstatFlag, "dirstat", false, "Show per-directory change distribution")
	cmd.Flags().BoolVar(&patchFlag, "patch", false, "Parse the full patch listing instead of the raw format")
	cmd.MarkFlagsMutuallyExclusive("numstat", "dirstat", "patch")
	return cmd
}

type diffMode int

const (
	diffModeRaw diffMode = iota
	diffModeNumstat
	diffModeDirstat
	diffModePatch
)

// splitDiffArgs separates revision arguments from pathspecs. Everything
// after "--" is a path; at most two revisions are accepted before it.
func splitDiffArgs(cmd *cobra.Command, args []string) (from, to string, paths []string, err error) {
	revs := args
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		revs = args[:dash]
		paths = args[dash:]
	}
	switch len(revs) {
	case 0:
	case 1:
		from = revs[0]
	case 2:
		from, to = revs[0], revs[1]
	default:
		return "", "", nil, output.NewUserError("at most two revisions may be given")
	}
	return from, to, paths, nil
}

// runDiff executes the diff command.
func runDiff(cmd *cobra.Command, flags *rootFlags, mode diffMode, args []string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())

	from, to, paths, err := splitDiffArgs(cmd, args)
	if err != nil {
		printer.Error(err)
		return err
	}

	r, err := buildRepo(flags)
	if err != nil {
		printer.Error(err)
		return err
	}
	ctx := cmd.Context()
	if err := requireRepo(ctx, r, printer); err != nil {
		return err
	}

	switch mode {
	case diffModeNumstat:
		entries, err := r.DiffNumstat(ctx, from, to, paths...)
		if err != nil {
			return mapGitError(err, printer)
		}
		return printNumstat(printer, entries)
	case diffModeDirstat:
		entries, err := r.DiffDirstat(ctx, from, to, paths...)
		if err != nil {
			return mapGitError(err, printer)
		}
		return printDirstat(printer, entries)
	case diffModePatch:
		result, err := r.DiffPatchEntries(ctx, from, to, paths...)
		if err != nil {
			return mapGitError(err, printer)
		}
		return printDiffResult(printer, result)
	default:
		result, err := r.DiffRaw(ctx, from, to, paths...)
		if err != nil {
			return mapGitError(err, printer)
		}
		return printDiffResult(printer, result)
	}
}

// printDiffResult renders a full diff result.
func printDiffResult(printer *output.Printer, result *porcelain.DiffResult) error {
	if printer.IsJSON() {
		files := make([]map[string]any, 0, len(result.Entries))
		for i := range result.Entries {
			files = append(files, diffEntryJSON(&result.Entries[i]))
		}
		return printer.WriteJSON(map[string]any{
			"files_changed": result.FilesChanged,
			"insertions":    result.TotalInsertions,
			"deletions":     result.TotalDeletions,
			"files":         files,
		})
	}

	if len(result.Entries) == 0 {
		printer.Println("No changes")
		return nil
	}

	rows := make([][]string, 0, len(result.Entries))
	for i := range result.Entries {
		entry := &result.Entries[i]
		counts := fmt.Sprintf("+%d -%d", entry.Insertions, entry.Deletions)
		if entry.Binary {
			counts = "binary"
		}
		path := entry.Path
		if entry.SrcPath != "" {
			path = entry.SrcPath + " -> " + entry.Path
		}
		rows = append(rows, []string{entry.Status.String(), counts, path})
	}
	printer.Table([]string{"Status", "Lines", "Path"}, rows)
	printer.Print("\n%d files changed, %d insertions(+), %d deletions(-)\n",
		result.FilesChanged, result.TotalInsertions, result.TotalDeletions)
	return nil
}

// diffEntryJSON shapes one entry for structured output.
func diffEntryJSON(entry *porcelain.DiffEntry) map[string]any {
	file := map[string]any{
		"path":       entry.Path,
		"status":     entry.Status.String(),
		"insertions": entry.Insertions,
		"deletions":  entry.Deletions,
	}
	if entry.SrcPath != "" {
		file["src_path"] = entry.SrcPath
	}
	if entry.Similarity > 0 {
		file["similarity"] = entry.Similarity
	}
	if entry.Binary {
		file["binary"] = true
	}
	if entry.Src != nil {
		file["src_sha"] = entry.Src.SHA
		file["src_mode"] = entry.Src.Mode
	}
	if entry.Dst != nil {
		file["dst_sha"] = entry.Dst.SHA
		file["dst_mode"] = entry.Dst.Mode
	}
	return file
}

// printNumstat renders per-file counts.
func printNumstat(printer *output.Printer, entries []porcelain.NumstatEntry) error {
	if printer.IsJSON() {
		files := make([]map[string]any, 0, len(entries))
		for _, entry := range entries {
			file := map[string]any{
				"path":       entry.Path,
				"insertions": entry.Insertions,
				"deletions":  entry.Deletions,
			}
			if entry.SrcPath != "" {
				file["src_path"] = entry.SrcPath
			}
			if entry.Binary {
				file["binary"] = true
			}
			files = append(files, file)
		}
		return printer.WriteJSON(map[string]any{"files": files})
	}

	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		ins, del := strconv.Itoa(entry.Insertions), strconv.Itoa(entry.Deletions)
		if entry.Binary {
			ins, del = "-", "-"
		}
		rows = append(rows, []string{ins, del, entry.Path})
	}
	printer.Table([]string{"Added", "Removed", "Path"}, rows)
	return nil
}

// printDirstat renders the per-directory distribution.
func printDirstat(printer *output.Printer, entries []porcelain.DirstatEntry) error {
	if printer.IsJSON() {
		dirs := make([]map[string]any, 0, len(entries))
		for _, entry := range entries {
			dirs = append(dirs, map[string]any{
				"directory": entry.Directory,
				"percent":   entry.Percent,
			})
		}
		return printer.WriteJSON(map[string]any{"directories": dirs})
	}

	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{fmt.Sprintf("%.1f%%", entry.Percent), entry.Directory})
	}
	printer.Table([]string{"Share", "Directory"}, rows)
	return nil
}
