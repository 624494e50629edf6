package repo

import (
	"context"

	"github.com/gorewood/gitcmd"
	"github.com/gorewood/gitcmd/porcelain"
)

// FsckOptions selects what the integrity check reports.
type FsckOptions struct {
	// Unreachable reports objects not reachable from any ref.
	Unreachable bool
	// Root reports root commits.
	Root bool
	// Tags reports tagged objects.
	Tags bool
}

// Fsck verifies object store connectivity and returns the findings.
// Warnings land on stderr, so the streams are merged before parsing; the
// progress meter is always suppressed to keep that stream parseable.
func (r *Repo) Fsck(ctx context.Context, opts FsckOptions) (*porcelain.FsckResult, error) {
	args := []string{"fsck"}
	if opts.Unreachable {
		args = append(args, "--unreachable")
	}
	if opts.Root {
		args = append(args, "--root")
	}
	if opts.Tags {
		args = append(args, "--tags")
	}
	args = append(args, "--no-progress")

	res, err := r.run(ctx, gitcmd.ZeroOrOne, gitcmd.Options{MergeStderr: true}, args...)
	if err != nil {
		return nil, err
	}
	return porcelain.ParseFsck(res.Stdout)
}
