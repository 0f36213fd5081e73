package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/valorisation/coherence/internal/adapters/outbound/snapshot"
	"github.com/valorisation/coherence/internal/application"
	"github.com/valorisation/coherence/internal/domain"
)

func registerTools(s *server.MCPServer, svc *application.ValidateService, configPath string) {
	s.AddTool(
		mcplib.NewTool("coherence_validate",
			mcplib.WithDescription("Check a diagnostic snapshot for inconsistencies between declared figures and registry data. Returns one report per snapshot."),
			mcplib.WithString("snapshot",
				mcplib.Required(),
				mcplib.Description("Snapshot as a JSON object, or a JSON array of snapshots"),
			),
			mcplib.WithString("locale", mcplib.Description("Message language: fr or en (default from config, else fr)")),
			mcplib.WithBoolean("strict", mcplib.Description("Treat warnings as a failing status")),
		),
		handleValidate(svc, configPath),
	)

	s.AddTool(
		mcplib.NewTool("coherence_rules",
			mcplib.WithDescription("List the coherence rules in evaluation order with their severity and fields"),
		),
		handleRules(svc),
	)
}

func handleValidate(svc *application.ValidateService, configPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		raw, err := request.RequireString("snapshot")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		cfg, err := svc.LoadConfig(configPath)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		if locale, _ := request.GetArguments()["locale"].(string); locale != "" {
			cfg.Locale = domain.Locale(locale)
		}
		if strict, _ := request.GetArguments()["strict"].(bool); strict {
			cfg.Strict = true
		}
		if err := cfg.Validate(); err != nil {
			return errorResult(err.Error()), nil
		}

		subs, _, err := snapshot.DecodeSubmissions("snapshot", []byte(raw))
		if err != nil {
			return errorResult(fmt.Sprintf("invalid snapshot: %v", err)), nil
		}

		reports, err := svc.ValidateBatch(ctx, cfg, subs)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(reports)
	}
}

func handleRules(svc *application.ValidateService) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		return jsonResult(svc.Rules())
	}
}

// jsonResult marshals v to indented JSON and wraps it in a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
