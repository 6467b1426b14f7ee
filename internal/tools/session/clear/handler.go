package clear

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gcakvpt/neo4j-orchestration-framework/internal/tools"
)

// Handler returns the tool handler function for clear-context
func Handler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleClearContext(ctx, request, deps)
	}
}

func handleClearContext(_ context.Context, _ mcp.CallToolRequest, deps *tools.ToolDependencies) (*mcp.CallToolResult, error) {
	if deps.Orchestrator == nil {
		errMessage := "Orchestrator is not initialized"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}

	deps.Orchestrator.ClearContext()
	slog.Info("conversation context cleared", "session", deps.Orchestrator.SessionID())
	return mcp.NewToolResultText("Conversation context cleared."), nil
}
