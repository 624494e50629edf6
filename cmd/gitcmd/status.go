// Package main provides the entry point for the gitcmd CLI.
package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gorewood/gitcmd/internal/output"
	"github.com/gorewood/gitcmd/porcelain"
)

// newStatusCmd creates the status command.
func newStatusCmd(flags *rootFlags) *cobra.Command {
	var checkFlag bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show working tree state",
		Long: `Show the working tree state from git's machine-readable status report.

Displays branch tracking information and per-file changes on the index and
worktree sides, including renames, conflicts, and untracked files.

Examples:
  gitcmd status          # Show human-readable status
  gitcmd status --json   # Output status as JSON for scripting
  gitcmd status --check  # Exit 3 when the tree is dirty`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, flags, checkFlag)
		},
	}
	cmd.Flags().BoolVar(&checkFlag, "check", false, "Exit with code 3 when anything is reported")
	return cmd
}

// runStatus executes the status command.
func runStatus(cmd *cobra.Command, flags *rootFlags, check bool) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())

	r, err := buildRepo(flags)
	if err != nil {
		printer.Error(err)
		return err
	}
	ctx := cmd.Context()
	if err := requireRepo(ctx, r, printer); err != nil {
		return err
	}

	result, err := r.Status(ctx)
	if err != nil {
		return mapGitError(err, printer)
	}

	if printer.IsJSON() {
		if err := printer.WriteJSON(statusJSON(result)); err != nil {
			return err
		}
	} else {
		printHumanStatus(printer, result)
	}

	if check && len(result.Entries) > 0 {
		return output.NewFindingsError("working tree has uncommitted changes")
	}
	return nil
}

// statusJSON shapes a status result for structured output.
func statusJSON(result *porcelain.StatusResult) map[string]any {
	files := make([]map[string]any, 0, len(result.Entries))
	for _, entry := range sortedEntries(result) {
		file := map[string]any{"path": entry.Path}
		if entry.Type != "" {
			file["state"] = entry.Type
		}
		if entry.OrigPath != "" {
			file["orig_path"] = entry.OrigPath
		}
		if entry.Untracked {
			file["untracked"] = true
		}
		if entry.Ignored {
			file["ignored"] = true
		}
		files = append(files, file)
	}
	return map[string]any{
		"branch":   result.Branch.Head,
		"oid":      result.Branch.OID,
		"upstream": result.Branch.Upstream,
		"ahead":    result.Branch.Ahead,
		"behind":   result.Branch.Behind,
		"clean":    len(result.Entries) == 0,
		"files":    files,
	}
}

// sortedEntries returns the entries in path order for stable output.
func sortedEntries(result *porcelain.StatusResult) []*porcelain.StatusEntry {
	entries := make([]*porcelain.StatusEntry, 0, len(result.Entries))
	for _, entry := range result.Entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries
}

// printHumanStatus outputs status in human-readable format.
func printHumanStatus(printer *output.Printer, result *porcelain.StatusResult) {
	printer.Section("Branch")
	printer.KeyValue("Name", result.Branch.Head)
	if result.Branch.Upstream != "" {
		printer.KeyValue("Upstream", result.Branch.Upstream)
		printer.KeyValue("Ahead/Behind", fmt.Sprintf("+%d -%d", result.Branch.Ahead, result.Branch.Behind))
	}

	if len(result.Entries) == 0 {
		printer.Println("\nWorking tree clean")
		return
	}

	printer.Section("Changes")
	rows := make([][]string, 0, len(result.Entries))
	for _, entry := range sortedEntries(result) {
		rows = append(rows, []string{statusLabel(entry), displayPath(entry)})
	}
	printer.Table([]string{"State", "Path"}, rows)
}

// statusLabel names an entry's state for humans.
func statusLabel(entry *porcelain.StatusEntry) string {
	switch {
	case entry.Untracked:
		return "untracked"
	case entry.Ignored:
		return "ignored"
	case entry.Conflict != nil:
		return "conflict"
	case entry.Type == "R":
		return "renamed"
	case entry.Type == "A":
		return "added"
	case entry.Type == "D":
		return "deleted"
	case entry.Type == "M":
		return "modified"
	default:
		return entry.Type
	}
}

// displayPath shows the rename origin when there is one.
func displayPath(entry *porcelain.StatusEntry) string {
	if entry.OrigPath != "" {
		return entry.OrigPath + " -> " + entry.Path
	}
	return entry.Path
}
