// Package main provides the entry point for the gitcmd CLI.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gorewood/gitcmd/internal/output"
	"github.com/gorewood/gitcmd/porcelain"
	"github.com/gorewood/gitcmd/repo"
)

// newFsckCmd creates the fsck command.
func newFsckCmd(flags *rootFlags) *cobra.Command {
	var opts repo.FsckOptions
	cmd := &cobra.Command{
		Use:   "fsck",
		Short: "Verify object store integrity",
		Long: `Verify the connectivity and validity of objects in the repository and
report dangling, missing, and unreachable objects plus warnings.

Exits with code 3 when problems are found.

Examples:
  gitcmd fsck                 # Basic integrity report
  gitcmd fsck --unreachable   # Include unreachable objects
  gitcmd fsck --root --json   # Include root commits, as JSON`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFsck(cmd, flags, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.Unreachable, "unreachable", false, "Report objects not reachable from any ref")
	cmd.Flags().BoolVar(&opts.Root, "root", false, "Report root commits")
	cmd.Flags().BoolVar(&opts.Tags, "tags", false, "Report tagged objects")
	return cmd
}

// runFsck executes the fsck command.
func runFsck(cmd *cobra.Command, flags *rootFlags, opts repo.FsckOptions) error {
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

	result, err := r.Fsck(ctx, opts)
	if err != nil {
		return mapGitError(err, printer)
	}

	if printer.IsJSON() {
		if err := printer.WriteJSON(fsckJSON(result)); err != nil {
			return err
		}
	} else {
		printHumanFsck(printer, result)
	}

	if result.AnyIssues() {
		return output.NewFindingsError(fsckSummary(result))
	}
	return nil
}

// fsckJSON shapes an integrity report for structured output.
func fsckJSON(result *porcelain.FsckResult) map[string]any {
	report := map[string]any{"clean": !result.AnyIssues()}
	addObjects := func(key string, objects []porcelain.FsckObject) {
		if len(objects) == 0 {
			return
		}
		shaped := make([]map[string]any, 0, len(objects))
		for _, object := range objects {
			item := map[string]any{"type": string(object.Type), "sha": object.SHA}
			if object.Name != "" {
				item["name"] = object.Name
			}
			if object.In != "" {
				item["in"] = object.In
			}
			shaped = append(shaped, item)
		}
		report[key] = shaped
	}
	addObjects("dangling", result.Dangling)
	addObjects("missing", result.Missing)
	addObjects("unreachable", result.Unreachable)
	addObjects("root", result.Root)
	addObjects("tagged", result.Tagged)

	if len(result.Warnings) > 0 {
		warnings := make([]string, 0, len(result.Warnings))
		for _, warning := range result.Warnings {
			warnings = append(warnings, warning.Message)
		}
		report["warnings"] = warnings
	}
	return report
}

// printHumanFsck outputs the report in human-readable format.
func printHumanFsck(printer *output.Printer, result *porcelain.FsckResult) {
	if !result.AnyIssues() && len(result.Root) == 0 && len(result.Tagged) == 0 {
		printer.Println("Object store is clean")
		return
	}

	printSection := func(title string, objects []porcelain.FsckObject) {
		if len(objects) == 0 {
			return
		}
		printer.Section(title)
		rows := make([][]string, 0, len(objects))
		for _, object := range objects {
			rows = append(rows, []string{string(object.Type), object.SHA, object.Name})
		}
		printer.Table([]string{"Type", "SHA", "Name"}, rows)
	}
	printSection("Dangling", result.Dangling)
	printSection("Missing", result.Missing)
	printSection("Unreachable", result.Unreachable)
	printSection("Root commits", result.Root)
	printSection("Tagged", result.Tagged)

	for _, warning := range result.Warnings {
		printer.Warn("%s", warning.Message)
	}
}

// fsckSummary condenses the findings into one line.
func fsckSummary(result *porcelain.FsckResult) string {
	summary := "integrity problems found:"
	count := func(label string, n int) {
		if n > 0 {
			summary += fmt.Sprintf(" %s %s,", strconv.Itoa(n), label)
		}
	}
	count("dangling", len(result.Dangling))
	count("missing", len(result.Missing))
	count("unreachable", len(result.Unreachable))
	count("warnings", len(result.Warnings))
	return summary[:len(summary)-1]
}
