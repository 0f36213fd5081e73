package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/valorisation/coherence/internal/application"
)

// Version is reported to MCP clients during initialization.
var Version = "0.1.0"

// NewCoherenceMCPServer creates an MCP server exposing the coherence tools and
// the rule catalog resource. configPath locates the .coherence.yaml applied to
// every validation.
func NewCoherenceMCPServer(svc *application.ValidateService, configPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"coherence",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, svc, configPath)
	registerResources(s, svc)

	return s
}
