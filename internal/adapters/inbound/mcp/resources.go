package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/valorisation/coherence/internal/application"
)

const rulesURI = "coherence://rules"

func registerResources(s *server.MCPServer, svc *application.ValidateService) {
	s.AddResource(
		mcplib.NewResource(
			rulesURI,
			"Coherence Rules",
			mcplib.WithResourceDescription("Rule catalog applied to diagnostic snapshots"),
			mcplib.WithMIMEType("application/json"),
		),
		handleRulesResource(svc),
	)
}

func handleRulesResource(svc *application.ValidateService) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		data, err := json.MarshalIndent(svc.Rules(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling rules: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      rulesURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
