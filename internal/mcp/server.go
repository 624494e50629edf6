// Package mcp provides a Model Context Protocol server for gitcmd.
// It exposes repository inspection as MCP tools that any MCP-capable agent
// can use without shelling out to git itself.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/gitcmd/repo"
)

// NewServer creates an MCP server with all gitcmd tools registered.
func NewServer(version string, r *repo.Repo) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "gitcmd",
		Version: version,
	}, nil)
	registerTools(server, r)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools. Every gitcmd
// tool only inspects the repository.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// registerTools adds all gitcmd tools to the server.
func registerTools(server *mcp.Server, r *repo.Repo) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_info",
		Description: "Show repository identity: root directory, current branch, HEAD commit, and the git binary version.",
		Annotations: readOnlyAnnotations(),
	}, handleInfo(r))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_status",
		Description: "Show working tree state: branch tracking info and per-file index/worktree changes, including untracked files.",
		Annotations: readOnlyAnnotations(),
	}, handleStatus(r))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_diff",
		Description: "Show changed files between two revisions (or the working tree) with per-file insertion and deletion counts.",
		Annotations: readOnlyAnnotations(),
	}, handleDiff(r))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_fsck",
		Description: "Verify object store integrity and report dangling, missing, and unreachable objects plus warnings.",
		Annotations: readOnlyAnnotations(),
	}, handleFsck(r))
}
