package repo

import (
	"context"

	"github.com/gorewood/gitcmd"
	"github.com/gorewood/gitcmd/porcelain"
)

// Status reports the working tree state from the machine-readable two-phase
// status listing, including branch tracking information.
func (r *Repo) Status(ctx context.Context) (*porcelain.StatusResult, error) {
	res, err := r.run(ctx, gitcmd.ZeroOnly, gitcmd.Options{},
		"status", "--porcelain=v2", "--branch")
	if err != nil {
		return nil, err
	}
	return porcelain.ParseStatus(res.Stdout)
}
