package history

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gcakvpt/neo4j-orchestration-framework/internal/memory"
	"github.com/gcakvpt/neo4j-orchestration-framework/internal/tools"
)

const defaultLimit = 10

type historyEntry struct {
	ID              string         `json:"id"`
	Query           string         `json:"query"`
	Intent          map[string]any `json:"intent,omitempty"`
	Entities        []string       `json:"entities,omitempty"`
	Cypher          string         `json:"cypher,omitempty"`
	Parameters      map[string]any `json:"parameters,omitempty"`
	ResultCount     int            `json:"result_count"`
	ExecutionTime   string         `json:"execution_time"`
	Timestamp       time.Time      `json:"timestamp"`
	Success         bool           `json:"success"`
	ErrorMessage    string         `json:"error_message,omitempty"`
}

// Handler returns the tool handler function for get-query-history
func Handler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleGetHistory(ctx, request, deps)
	}
}

func handleGetHistory(ctx context.Context, request mcp.CallToolRequest, deps *tools.ToolDependencies) (*mcp.CallToolResult, error) {
	if deps.Orchestrator == nil {
		errMessage := "Orchestrator is not initialized"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}

	var args GetHistoryInput
	if err := request.BindArguments(&args); err != nil {
		slog.Error("error binding arguments", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	limit := args.Limit
	if limit < 1 {
		limit = defaultLimit
	}

	var (
		records []memory.QueryRecord
		err     error
	)
	switch {
	case args.Entity != "":
		records, err = deps.Orchestrator.HistoryByEntity(ctx, args.Entity, limit)
	case args.SuccessfulOnly:
		records, err = deps.Orchestrator.SuccessfulHistory(ctx, limit)
	default:
		records, err = deps.Orchestrator.History(ctx, limit)
	}
	if err != nil {
		slog.Error("error fetching query history", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	entries := make([]historyEntry, len(records))
	for i, record := range records {
		entries[i] = historyEntry{
			ID:            record.ID,
			Query:         record.NaturalLanguage,
			Intent:        record.Intent,
			Entities:      record.Entities,
			Cypher:        record.Cypher,
			Parameters:    record.Parameters,
			ResultCount:   record.ResultCount,
			ExecutionTime: record.ExecutionTime.Round(time.Millisecond).String(),
			Timestamp:     record.Timestamp,
			Success:       record.Success,
			ErrorMessage:  record.ErrorMessage,
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		slog.Error("error formatting history", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
