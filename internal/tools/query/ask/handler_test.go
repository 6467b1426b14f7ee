package ask_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/mock/gomock"

	database_mocks "github.com/gcakvpt/neo4j-orchestration-framework/internal/database/mocks"
	"github.com/gcakvpt/neo4j-orchestration-framework/internal/memory"
	"github.com/gcakvpt/neo4j-orchestration-framework/internal/orchestration"
	"github.com/gcakvpt/neo4j-orchestration-framework/internal/tools"
	"github.com/gcakvpt/neo4j-orchestration-framework/internal/tools/query/ask"
)

func newDeps(t *testing.T, mockDB *database_mocks.MockService) *tools.ToolDependencies {
	t.Helper()

	cfg := orchestration.DefaultConfig()
	cfg.SessionID = "test-session"
	orchestrator, err := orchestration.NewOrchestrator(nil, orchestration.Dependencies{
		DB:           mockDB,
		PatternStore: memory.NewInMemoryPatternStore(),
	}, cfg)
	if err != nil {
		t.Fatalf("failed to build orchestrator: %v", err)
	}
	t.Cleanup(orchestrator.Close)

	return &tools.ToolDependencies{
		DBService:    mockDB,
		Orchestrator: orchestrator,
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("expected result content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func TestAskGraphHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("successful question", func(t *testing.T) {
		mockDB := database_mocks.NewMockService(ctrl)
		mockDB.EXPECT().
			ExecuteReadQuery(gomock.Any(), "MATCH (v:Vendor)\nRETURN v", map[string]any{}).
			Return([]*neo4j.Record{
				{Keys: []string{"v"}, Values: []any{map[string]any{"name": "Acme Corp"}}},
			}, nil)

		handler := ask.Handler(newDeps(t, mockDB))
		request := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Arguments: map[string]any{
					"query": "show all vendors",
				},
			},
		}

		result, err := handler(context.Background(), request)

		if err != nil {
			t.Errorf("Expected no error, got: %v", err)
		}
		if result == nil || result.IsError {
			t.Fatal("Expected success result")
		}
		text := resultText(t, result)
		if !strings.Contains(text, "Acme Corp") {
			t.Errorf("Expected records in response, got: %s", text)
		}
		if !strings.Contains(text, "MATCH (v:Vendor)") {
			t.Errorf("Expected cypher in response, got: %s", text)
		}
	})

	t.Run("explain mode does not execute", func(t *testing.T) {
		// No ExecuteReadQuery expectation: touching the database fails
		// the test.
		mockDB := database_mocks.NewMockService(ctrl)

		handler := ask.Handler(newDeps(t, mockDB))
		request := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Arguments: map[string]any{
					"query":   "show vendors with critical risk",
					"explain": true,
				},
			},
		}

		result, err := handler(context.Background(), request)

		if err != nil {
			t.Errorf("Expected no error, got: %v", err)
		}
		if result == nil || result.IsError {
			t.Fatal("Expected success result")
		}
		text := resultText(t, result)
		if !strings.Contains(text, "WHERE v.riskLevel = $riskLevel") {
			t.Errorf("Expected generated cypher in response, got: %s", text)
		}
		if !strings.Contains(text, `"explained": true`) {
			t.Errorf("Expected explained flag in response, got: %s", text)
		}
	})

	t.Run("missing query parameter", func(t *testing.T) {
		mockDB := database_mocks.NewMockService(ctrl)

		handler := ask.Handler(newDeps(t, mockDB))
		request := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Arguments: map[string]any{},
			},
		}

		result, err := handler(context.Background(), request)

		if err != nil {
			t.Errorf("Expected no error from handler, got: %v", err)
		}
		if result == nil || !result.IsError {
			t.Error("Expected error result for missing query")
		}
	})

	t.Run("invalid arguments binding", func(t *testing.T) {
		mockDB := database_mocks.NewMockService(ctrl)

		handler := ask.Handler(newDeps(t, mockDB))
		request := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Arguments: "invalid string instead of map",
			},
		}

		result, err := handler(context.Background(), request)

		if err != nil {
			t.Errorf("Expected no error from handler, got: %v", err)
		}
		if result == nil || !result.IsError {
			t.Error("Expected error result for invalid arguments")
		}
	})

	t.Run("nil orchestrator", func(t *testing.T) {
		handler := ask.Handler(&tools.ToolDependencies{})
		result, err := handler(context.Background(), mcp.CallToolRequest{})

		if err != nil {
			t.Errorf("Expected no error from handler, got: %v", err)
		}
		if result == nil || !result.IsError {
			t.Error("Expected error result for nil orchestrator")
		}
	})

	t.Run("unclassifiable question", func(t *testing.T) {
		mockDB := database_mocks.NewMockService(ctrl)

		handler := ask.Handler(newDeps(t, mockDB))
		request := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Arguments: map[string]any{
					"query": "purple monkey dishwasher",
				},
			},
		}

		result, err := handler(context.Background(), request)

		if err != nil {
			t.Errorf("Expected no error from handler, got: %v", err)
		}
		if result == nil || !result.IsError {
			t.Error("Expected error result for unclassifiable question")
		}
	})

	t.Run("database query execution failure", func(t *testing.T) {
		mockDB := database_mocks.NewMockService(ctrl)
		mockDB.EXPECT().
			ExecuteReadQuery(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("database connection error"))

		handler := ask.Handler(newDeps(t, mockDB))
		request := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Arguments: map[string]any{
					"query": "show all vendors",
				},
			},
		}

		result, err := handler(context.Background(), request)

		if err != nil {
			t.Errorf("Expected no error from handler, got: %v", err)
		}
		if result == nil || !result.IsError {
			t.Error("Expected error result for query execution failure")
		}
	})
}
