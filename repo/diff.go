package repo

import (
	"context"

	"github.com/gorewood/gitcmd"
	"github.com/gorewood/gitcmd/porcelain"
)

// diffArgs assembles a diff argv: the listing flags, then validated
// revisions, then "--" and any pathspecs. Empty revisions are dropped, so a
// bare call diffs the working tree against the index.
func diffArgs(flags []string, from, to string, paths []string) ([]string, error) {
	args := append([]string{"diff"}, flags...)
	for _, rev := range []string{from, to} {
		if rev == "" {
			continue
		}
		validated, err := validateRev(rev)
		if err != nil {
			return nil, err
		}
		args = append(args, validated)
	}
	if len(paths) > 0 {
		args = append(args, "--")
		args = append(args, paths...)
	}
	return args, nil
}

// DiffRaw returns the raw-format diff between two revisions, enriched with
// per-file insertion and deletion counts from a numstat pass over the same
// range. Either revision may be empty.
//
// Exit code 1 means differences were found and is not an error.
func (r *Repo) DiffRaw(ctx context.Context, from, to string, paths ...string) (*porcelain.DiffResult, error) {
	args, err := diffArgs([]string{"--raw", "--abbrev=40", "--find-renames"}, from, to, paths)
	if err != nil {
		return nil, err
	}
	res, err := r.run(ctx, gitcmd.ZeroOrOne, gitcmd.Options{}, args...)
	if err != nil {
		return nil, err
	}
	result, err := porcelain.ParseRaw(res.Stdout)
	if err != nil {
		return nil, err
	}

	entries, err := r.DiffNumstat(ctx, from, to, paths...)
	if err != nil {
		return nil, err
	}
	result.ApplyNumstat(entries)
	return result, nil
}

// DiffPatchEntries returns the per-file entries of a full patch listing,
// with line counts taken from the hunks themselves. Type changes appear as
// two entries, a deletion and an addition, as the patch format reports them.
func (r *Repo) DiffPatchEntries(ctx context.Context, from, to string, paths ...string) (*porcelain.DiffResult, error) {
	args, err := diffArgs([]string{"--patch", "--find-renames"}, from, to, paths)
	if err != nil {
		return nil, err
	}
	res, err := r.run(ctx, gitcmd.ZeroOrOne, gitcmd.Options{}, args...)
	if err != nil {
		return nil, err
	}
	return porcelain.ParsePatch(res.Stdout)
}

// DiffNumstat returns per-file insertion and deletion counts.
func (r *Repo) DiffNumstat(ctx context.Context, from, to string, paths ...string) ([]porcelain.NumstatEntry, error) {
	args, err := diffArgs([]string{"--numstat", "--find-renames"}, from, to, paths)
	if err != nil {
		return nil, err
	}
	res, err := r.run(ctx, gitcmd.ZeroOrOne, gitcmd.Options{}, args...)
	if err != nil {
		return nil, err
	}
	return porcelain.ParseNumstat(res.Stdout)
}

// DiffDirstat returns the per-directory change distribution.
func (r *Repo) DiffDirstat(ctx context.Context, from, to string, paths ...string) ([]porcelain.DirstatEntry, error) {
	args, err := diffArgs([]string{"--dirstat"}, from, to, paths)
	if err != nil {
		return nil, err
	}
	res, err := r.run(ctx, gitcmd.ZeroOrOne, gitcmd.Options{}, args...)
	if err != nil {
		return nil, err
	}
	return porcelain.ParseDirstat(res.Stdout)
}
