package mcp

import (
	"context"
	"fmt"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/gitcmd/porcelain"
	"github.com/gorewood/gitcmd/repo"
)

// --- Info tool ---

// InfoInput is the input for the git_info tool (no parameters needed).
type InfoInput struct{}

// InfoOutput is the output for the git_info tool.
type InfoOutput struct {
	Root       string `json:"root"        jsonschema:"repository root directory"`
	Branch     string `json:"branch"      jsonschema:"current branch, or HEAD when detached"`
	Head       string `json:"head"        jsonschema:"HEAD commit SHA"`
	GitVersion string `json:"git_version" jsonschema:"version of the git binary"`
}

func handleInfo(r *repo.Repo) mcp.ToolHandlerFor[InfoInput, InfoOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ InfoInput) (*mcp.CallToolResult, InfoOutput, error) {
		root, err := r.RepoRoot(ctx)
		if err != nil {
			return nil, InfoOutput{}, fmt.Errorf("getting repo root: %w", err)
		}
		branch, err := r.CurrentBranch(ctx)
		if err != nil {
			return nil, InfoOutput{}, fmt.Errorf("getting current branch: %w", err)
		}
		head, err := r.HEAD(ctx)
		if err != nil {
			return nil, InfoOutput{}, fmt.Errorf("getting HEAD: %w", err)
		}
		version, err := r.Version(ctx)
		if err != nil {
			return nil, InfoOutput{}, fmt.Errorf("getting git version: %w", err)
		}

		return nil, InfoOutput{Root: root, Branch: branch, Head: head, GitVersion: version}, nil
	}
}

// --- Status tool ---

// StatusInput is the input for the git_status tool (no parameters needed).
type StatusInput struct{}

// StatusFile is one working tree entry in status output.
type StatusFile struct {
	Path      string `json:"path"                 jsonschema:"file path"`
	OrigPath  string `json:"orig_path,omitempty"  jsonschema:"original path for renames and copies"`
	State     string `json:"state,omitempty"      jsonschema:"dominant change letter (M/A/D/R/C/T/U)"`
	Index     string `json:"index,omitempty"      jsonschema:"index side change letter"`
	Worktree  string `json:"worktree,omitempty"   jsonschema:"worktree side change letter"`
	Untracked bool   `json:"untracked,omitempty"  jsonschema:"file is not tracked"`
	Ignored   bool   `json:"ignored,omitempty"    jsonschema:"file is ignored"`
}

// StatusOutput is the output for the git_status tool.
type StatusOutput struct {
	Branch   string       `json:"branch"             jsonschema:"current branch"`
	Upstream string       `json:"upstream,omitempty" jsonschema:"upstream tracking branch"`
	Ahead    int          `json:"ahead"              jsonschema:"commits ahead of upstream"`
	Behind   int          `json:"behind"             jsonschema:"commits behind upstream"`
	Clean    bool         `json:"clean"              jsonschema:"true when nothing is reported"`
	Files    []StatusFile `json:"files,omitempty"    jsonschema:"changed, untracked, and ignored files"`
}

func handleStatus(r *repo.Repo) mcp.ToolHandlerFor[StatusInput, StatusOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ StatusInput) (*mcp.CallToolResult, StatusOutput, error) {
		result, err := r.Status(ctx)
		if err != nil {
			return nil, StatusOutput{}, fmt.Errorf("getting status: %w", err)
		}

		out := StatusOutput{
			Branch:   result.Branch.Head,
			Upstream: result.Branch.Upstream,
			Ahead:    result.Branch.Ahead,
			Behind:   result.Branch.Behind,
			Clean:    len(result.Entries) == 0,
			Files:    make([]StatusFile, 0, len(result.Entries)),
		}
		for _, entry := range result.Entries {
			out.Files = append(out.Files, toStatusFile(entry))
		}
		// Entries is a map; emit in path order so repeated calls agree.
		sort.Slice(out.Files, func(i, j int) bool { return out.Files[i].Path < out.Files[j].Path })
		return nil, out, nil
	}
}

func toStatusFile(entry *porcelain.StatusEntry) StatusFile {
	file := StatusFile{
		Path:      entry.Path,
		OrigPath:  entry.OrigPath,
		State:     entry.Type,
		Untracked: entry.Untracked,
		Ignored:   entry.Ignored,
	}
	if entry.Index != 0 && entry.Index != '.' {
		file.Index = string(entry.Index)
	}
	if entry.Worktree != 0 && entry.Worktree != '.' {
		file.Worktree = string(entry.Worktree)
	}
	return file
}

// --- Diff tool ---

// DiffInput is the input for the git_diff tool.
type DiffInput struct {
	From  string   `json:"from,omitempty"  jsonschema:"older revision; empty diffs the working tree"`
	To    string   `json:"to,omitempty"    jsonschema:"newer revision"`
	Paths []string `json:"paths,omitempty" jsonschema:"limit the diff to these paths"`
}

// FileDiff is one changed file in diff output.
type FileDiff struct {
	Path       string `json:"path"                 jsonschema:"file path after the change"`
	SrcPath    string `json:"src_path,omitempty"   jsonschema:"path before a rename or copy"`
	Status     string `json:"status"               jsonschema:"change kind (modified, added, deleted, ...)"`
	Insertions int    `json:"insertions"           jsonschema:"lines added"`
	Deletions  int    `json:"deletions"            jsonschema:"lines removed"`
	Binary     bool   `json:"binary,omitempty"     jsonschema:"file content is binary"`
	Similarity int    `json:"similarity,omitempty" jsonschema:"rename/copy similarity percentage"`
}

// DiffOutput is the output for the git_diff tool.
type DiffOutput struct {
	FilesChanged int        `json:"files_changed"   jsonschema:"number of changed files"`
	Insertions   int        `json:"insertions"      jsonschema:"total lines added"`
	Deletions    int        `json:"deletions"       jsonschema:"total lines removed"`
	Files        []FileDiff `json:"files,omitempty" jsonschema:"per-file changes"`
}

func handleDiff(r *repo.Repo) mcp.ToolHandlerFor[DiffInput, DiffOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DiffInput) (*mcp.CallToolResult, DiffOutput, error) {
		result, err := r.DiffRaw(ctx, input.From, input.To, input.Paths...)
		if err != nil {
			return nil, DiffOutput{}, fmt.Errorf("diffing: %w", err)
		}

		out := DiffOutput{
			FilesChanged: result.FilesChanged,
			Insertions:   result.TotalInsertions,
			Deletions:    result.TotalDeletions,
			Files:        make([]FileDiff, 0, len(result.Entries)),
		}
		for _, entry := range result.Entries {
			out.Files = append(out.Files, FileDiff{
				Path:       entry.Path,
				SrcPath:    entry.SrcPath,
				Status:     entry.Status.String(),
				Insertions: entry.Insertions,
				Deletions:  entry.Deletions,
				Binary:     entry.Binary,
				Similarity: entry.Similarity,
			})
		}
		return nil, out, nil
	}
}

// --- Fsck tool ---

// FsckInput is the input for the git_fsck tool.
type FsckInput struct {
	Unreachable bool `json:"unreachable,omitempty" jsonschema:"also report unreachable objects"`
	Root        bool `json:"root,omitempty"        jsonschema:"also report root commits"`
	Tags        bool `json:"tags,omitempty"        jsonschema:"also report tagged objects"`
}

// FsckObject is one reported object.
type FsckObject struct {
	Type string `json:"type"           jsonschema:"object type (commit, tree, blob, tag)"`
	SHA  string `json:"sha"            jsonschema:"object SHA"`
	Name string `json:"name,omitempty" jsonschema:"reachability name, when known"`
}

// FsckOutput is the output for the git_fsck tool.
type FsckOutput struct {
	Clean       bool         `json:"clean"                 jsonschema:"true when no problems were found"`
	Dangling    []FsckObject `json:"dangling,omitempty"    jsonschema:"objects not referenced by anything"`
	Missing     []FsckObject `json:"missing,omitempty"     jsonschema:"objects referenced but absent"`
	Unreachable []FsckObject `json:"unreachable,omitempty" jsonschema:"objects not reachable from any ref"`
	Warnings    []string     `json:"warnings,omitempty"    jsonschema:"non-fatal integrity warnings"`
}

func handleFsck(r *repo.Repo) mcp.ToolHandlerFor[FsckInput, FsckOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input FsckInput) (*mcp.CallToolResult, FsckOutput, error) {
		result, err := r.Fsck(ctx, repo.FsckOptions{
			Unreachable: input.Unreachable,
			Root:        input.Root,
			Tags:        input.Tags,
		})
		if err != nil {
			return nil, FsckOutput{}, fmt.Errorf("checking integrity: %w", err)
		}

		out := FsckOutput{
			Clean:       !result.AnyIssues(),
			Dangling:    toFsckObjects(result.Dangling),
			Missing:     toFsckObjects(result.Missing),
			Unreachable: toFsckObjects(result.Unreachable),
		}
		for _, warning := range result.Warnings {
			out.Warnings = append(out.Warnings, warning.Message)
		}
		return nil, out, nil
	}
}

func toFsckObjects(objects []porcelain.FsckObject) []FsckObject {
	converted := make([]FsckObject, 0, len(objects))
	for _, object := range objects {
		converted = append(converted, FsckObject{
			Type: string(object.Type),
			SHA:  object.SHA,
			Name: object.Name,
		})
	}
	return converted
}
