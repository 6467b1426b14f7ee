package suggest

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gcakvpt/neo4j-orchestration-framework/internal/orchestration"
	"github.com/gcakvpt/neo4j-orchestration-framework/internal/tools"
)

// Handler returns the tool handler function for suggest-filters
func Handler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleSuggestFilters(ctx, request, deps)
	}
}

func handleSuggestFilters(ctx context.Context, request mcp.CallToolRequest, deps *tools.ToolDependencies) (*mcp.CallToolResult, error) {
	if deps.Orchestrator == nil {
		errMessage := "Orchestrator is not initialized"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}

	var args SuggestFiltersInput
	if err := request.BindArguments(&args); err != nil {
		slog.Error("error binding arguments", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	if args.Query == "" {
		errMessage := "query parameter is required"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}

	suggestions, err := deps.Orchestrator.Suggest(ctx, args.Query)
	if err != nil {
		slog.Error("error suggesting filters", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	if suggestions == nil {
		suggestions = []orchestration.Suggestion{}
	}

	data, err := json.MarshalIndent(suggestions, "", "  ")
	if err != nil {
		slog.Error("error formatting suggestions", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
