// Package main provides the entry point for the gitcmd CLI.
package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	gitcmdmcp "github.com/gorewood/gitcmd/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run gitcmd as a Model Context Protocol (MCP) server over stdio.

This exposes repository inspection as MCP tools that any MCP-capable agent
environment can use (Claude Code, Cursor, Windsurf, Gemini CLI, etc).

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "gitcmd": {
        "command": "gitcmd",
        "args": ["serve"]
      }
    }
  }

Available tools: git_info, git_status, git_diff, git_fsck`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := buildRepo(flags)
			if err != nil {
				return err
			}
			server := gitcmdmcp.NewServer(buildVersion(), r)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
