// Package main provides the entry point for the gitcmd CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gorewood/gitcmd/internal/config"
	"github.com/gorewood/gitcmd/internal/envfile"
	"github.com/gorewood/gitcmd/internal/output"
	"github.com/gorewood/gitcmd/repo"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// useColor resolves the --color flag against TTY detection.
func useColor(cmd *cobra.Command) bool {
	mode := "auto"
	if flag := cmd.Root().PersistentFlags().Lookup("color"); flag != nil {
		mode = flag.Value.String()
	}
	return output.ResolveColorMode(mode, output.IsTTY(cmd.OutOrStdout()))
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// rootFlags holds the persistent flag values shared by all subcommands.
type rootFlags struct {
	dir     string
	timeout time.Duration
	envFile string
	verbose bool
}

// newRootCmd creates the root command for the gitcmd CLI.
func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "gitcmd",
		Short: "Structured git inspection",
		Long: `Gitcmd drives the git binary and turns its machine-readable output into
structured reports.

It parses the porcelain status, raw and patch diff listings, numstat and
dirstat summaries, and fsck integrity reports, with full support for escaped
paths, timeouts, and environment overlays.

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// If --json flag is set but no subcommand, output JSON error
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'gitcmd --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", "auto", "Color output: auto, always, never")
	cmd.PersistentFlags().StringVarP(&flags.dir, "dir", "C", "", "Run as if started in this directory")
	cmd.PersistentFlags().DurationVar(&flags.timeout, "timeout", 0, "Per-invocation deadline (0 uses the configured default)")
	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", "", "KEY=VALUE file applied to git invocations")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log every git invocation")

	// Configure lipgloss for TTY detection
	lipgloss.SetHasDarkBackground(true)

	cmd.AddCommand(newStatusCmd(flags))
	cmd.AddCommand(newDiffCmd(flags))
	cmd.AddCommand(newFsckCmd(flags))
	cmd.AddCommand(newServeCmd(flags))

	return cmd
}

// buildRepo assembles the Repo for one command run: user config first, then
// persistent flags on top.
func buildRepo(flags *rootFlags) (*repo.Repo, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, output.NewSystemErrorWithCause("loading config", err)
	}

	r := repo.New(flags.dir)
	r.Binary = cfg.Binary
	r.SSHCommand = cfg.SSHCommand
	r.Timeout = cfg.Timeout
	if flags.timeout > 0 {
		r.Timeout = flags.timeout
	}

	if flags.envFile != "" {
		env, err := envfile.Load(flags.envFile)
		if err != nil {
			return nil, output.NewSystemErrorWithCause("loading env file", err)
		}
		r.Env = env
	} else {
		r.Env = loadDefaultEnvFiles()
	}

	if flags.verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, output.NewSystemErrorWithCause("building logger", err)
		}
		r.Logger = logger
	}
	return r, nil
}

// loadDefaultEnvFiles merges env files in priority order. Later files never
// override earlier ones.
//
// Resolution order:
//  1. $CWD/.env.local   (per-repo override, gitignored)
//  2. $CWD/.env         (per-repo)
//  3. ~/.config/gitcmd/env (global fallback)
func loadDefaultEnvFiles() map[string]string {
	merged := map[string]string{}
	paths := []string{".env.local", ".env"}
	if dir := config.Dir(); dir != "" {
		paths = append(paths, filepath.Join(dir, "env"))
	}
	for _, path := range paths {
		env, err := envfile.Load(path)
		if err != nil {
			continue
		}
		for key, value := range env {
			if _, present := merged[key]; !present {
				merged[key] = value
			}
		}
	}
	return merged
}

// requireRepo fails early with a user error when dir is not a repository.
func requireRepo(ctx context.Context, r *repo.Repo, printer *output.Printer) error {
	if !r.IsRepo(ctx) {
		err := output.NewUserError("not a git repository")
		printer.Error(err)
		return err
	}
	return nil
}

// mapGitError converts a library error for the printer and exit code.
func mapGitError(err error, printer *output.Printer) error {
	mapped := output.FromGitError(err)
	printer.Error(mapped)
	return mapped
}
