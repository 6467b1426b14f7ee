package ask

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gcakvpt/neo4j-orchestration-framework/internal/tools"
)

type askGraphResponse struct {
	Records       []map[string]any `json:"records,omitempty"`
	RecordCount   int              `json:"record_count"`
	Cypher        string           `json:"cypher"`
	Parameters    map[string]any   `json:"parameters"`
	Intent        map[string]any   `json:"intent"`
	Cached        bool             `json:"cached"`
	ExecutionTime string           `json:"execution_time,omitempty"`
	Explained     bool             `json:"explained,omitempty"`
}

// Handler returns the tool handler function for ask-graph
func Handler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleAskGraph(ctx, request, deps)
	}
}

func handleAskGraph(ctx context.Context, request mcp.CallToolRequest, deps *tools.ToolDependencies) (*mcp.CallToolResult, error) {
	if deps.Orchestrator == nil {
		errMessage := "Orchestrator is not initialized"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}

	var args AskGraphInput
	if err := request.BindArguments(&args); err != nil {
		slog.Error("error binding arguments", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	if args.Query == "" {
		errMessage := "query parameter is required"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}

	slog.Info("answering graph question", "query", args.Query, "explain", args.Explain)

	if args.Explain {
		intent, cypher, params, err := deps.Orchestrator.Plan(ctx, args.Query)
		if err != nil {
			slog.Error("error planning query", "error", err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		return marshalResponse(askGraphResponse{
			Cypher:     cypher,
			Parameters: params,
			Intent:     intent.ToMap(),
			Explained:  true,
		})
	}

	result, err := deps.Orchestrator.Query(ctx, args.Query)
	if err != nil {
		slog.Error("error executing graph question", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	return marshalResponse(askGraphResponse{
		Records:       result.Records,
		RecordCount:   result.Summary.RecordCount,
		Cypher:        result.Cypher,
		Parameters:    result.Parameters,
		Intent:        result.Intent.ToMap(),
		Cached:        result.Cached,
		ExecutionTime: result.ExecutionTime.Round(time.Millisecond).String(),
	})
}

func marshalResponse(response askGraphResponse) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		slog.Error("error formatting response", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
