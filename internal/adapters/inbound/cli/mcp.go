package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/valorisation/coherence/internal/adapters/inbound/mcp"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the coherence MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start coherence MCP server (stdio)",
		Long:  "Start the coherence MCP server using stdio transport so assistants can validate snapshots and read the rule catalog.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				configPath = "."
			}
			mcpadapter.Version = version
			s := mcpadapter.NewCoherenceMCPServer(newService(), configPath)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to .coherence.yaml or its directory (defaults to current working directory)")

	return cmd
}
