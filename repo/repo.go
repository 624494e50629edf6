// Package repo provides high-level git operations for a single repository,
// built on the gitcmd runner and the porcelain parsers.
package repo

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gorewood/gitcmd"
)

// Repo addresses one repository and carries the per-repository invocation
// settings. The zero value operates on the current directory.
type Repo struct {
	// Dir is the working directory for git invocations. Empty means the
	// process working directory.
	Dir string
	// GitDir, WorkTree, and IndexFile override the repository discovery via
	// the GIT_DIR, GIT_WORK_TREE, and GIT_INDEX_FILE environment variables.
	GitDir    string
	WorkTree  string
	IndexFile string
	// SSHCommand sets GIT_SSH_COMMAND for this repository. Empty falls back
	// to the process-wide default, if one was configured.
	SSHCommand string
	// Timeout bounds each invocation. Zero falls back to the process-wide
	// default; gitcmd.NoTimeout disables the deadline.
	Timeout time.Duration
	// Env holds extra environment overrides applied to every invocation.
	Env map[string]string
	// Logger is handed to the runner for invocation logging. Nil is silent.
	Logger *zap.Logger
	// Binary overrides the git executable name.
	Binary string

	runnerOnce sync.Once
	runner     *gitcmd.Runner

	versionOnce sync.Once
	version     string
	versionErr  error
}

// New returns a Repo rooted at dir.
func New(dir string) *Repo {
	return &Repo{Dir: dir}
}

// Runner returns the shared runner for this repository, creating it on first
// use.
func (r *Repo) Runner() *gitcmd.Runner {
	r.runnerOnce.Do(func() {
		runner := gitcmd.NewRunner(r.Binary)
		runner.Dir = r.Dir
		runner.Logger = r.Logger
		r.runner = runner
	})
	return r.runner
}

// run executes one git invocation and applies the exit policy.
func (r *Repo) run(ctx context.Context, policy gitcmd.ExitPolicy, opts gitcmd.Options, args ...string) (*gitcmd.Result, error) {
	opts.Env = r.overlay(opts.Env)
	if opts.Timeout == 0 {
		opts.Timeout = r.Timeout
	}
	res, err := r.Runner().Run(ctx, args, opts)
	if err != nil {
		return nil, err
	}
	if err := res.Check(policy); err != nil {
		return nil, err
	}
	return res, nil
}

// overlay merges the repository environment into one invocation overlay.
// LC_ALL=C pins message and number formatting so output stays parseable.
func (r *Repo) overlay(extra map[string]string) map[string]string {
	env := make(map[string]string, len(r.Env)+len(extra)+5)
	for key, value := range r.Env {
		env[key] = value
	}
	for key, value := range extra {
		env[key] = value
	}
	env["LC_ALL"] = "C"
	if r.GitDir != "" {
		env["GIT_DIR"] = r.GitDir
	}
	if r.WorkTree != "" {
		env["GIT_WORK_TREE"] = r.WorkTree
	}
	if r.IndexFile != "" {
		env["GIT_INDEX_FILE"] = r.IndexFile
	}
	ssh := r.SSHCommand
	if ssh == "" {
		ssh = gitcmd.DefaultSSHCommand()
	}
	if ssh != "" {
		env["GIT_SSH_COMMAND"] = ssh
	}
	return env
}

// validateRev rejects revision arguments that the binary would parse as
// flags. Returns the revision unchanged when it is safe to pass.
func validateRev(rev string) (string, error) {
	if rev == "" {
		return "", &gitcmd.ArgumentError{Msg: "empty revision"}
	}
	if strings.HasPrefix(rev, "-") {
		return "", &gitcmd.ArgumentError{
			Msg: fmt.Sprintf("invalid revision %q: must not begin with -", rev),
		}
	}
	return rev, nil
}

// IsRepo reports whether Dir is inside a git repository.
func (r *Repo) IsRepo(ctx context.Context) bool {
	_, err := r.run(ctx, gitcmd.ZeroOnly, gitcmd.Options{Chomp: true},
		"rev-parse", "--git-dir")
	return err == nil
}

// RepoRoot returns the root directory of the repository.
func (r *Repo) RepoRoot(ctx context.Context) (string, error) {
	res, err := r.run(ctx, gitcmd.ZeroOnly, gitcmd.Options{Chomp: true},
		"rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return res.Stdout, nil
}

// CurrentBranch returns the name of the checked-out branch, or "HEAD" when
// detached.
func (r *Repo) CurrentBranch(ctx context.Context) (string, error) {
	res, err := r.run(ctx, gitcmd.ZeroOnly, gitcmd.Options{Chomp: true},
		"rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return res.Stdout, nil
}

// HEAD returns the full SHA of the current HEAD commit.
func (r *Repo) HEAD(ctx context.Context) (string, error) {
	res, err := r.run(ctx, gitcmd.ZeroOnly, gitcmd.Options{Chomp: true},
		"rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return res.Stdout, nil
}

// Version returns the version string of the git binary, probed once per Repo
// and cached.
func (r *Repo) Version(ctx context.Context) (string, error) {
	r.versionOnce.Do(func() {
		res, err := r.run(ctx, gitcmd.ZeroOnly, gitcmd.Options{Chomp: true}, "version")
		if err != nil {
			r.versionErr = err
			return
		}
		r.version = strings.TrimPrefix(res.Stdout, "git version ")
	})
	return r.version, r.versionErr
}
