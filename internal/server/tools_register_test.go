package server

import (
	"testing"

	"go.uber.org/mock/gomock"

	database_mocks "github.com/gcakvpt/neo4j-orchestration-framework/internal/database/mocks"
	"github.com/gcakvpt/neo4j-orchestration-framework/internal/memory"
	"github.com/gcakvpt/neo4j-orchestration-framework/internal/orchestration"
	"github.com/gcakvpt/neo4j-orchestration-framework/internal/tools"
)

func newTestServer(t *testing.T, readOnly bool) *OrchestrationMCPServer {
	t.Helper()

	ctrl := gomock.NewController(t)
	dbService := database_mocks.NewMockService(ctrl)

	cfg := orchestration.DefaultConfig()
	cfg.SessionID = "test-session"
	orchestrator, err := orchestration.NewOrchestrator(nil, orchestration.Dependencies{
		DB:           dbService,
		PatternStore: memory.NewInMemoryPatternStore(),
	}, cfg)
	if err != nil {
		t.Fatalf("Failed to build orchestrator: %v", err)
	}
	t.Cleanup(orchestrator.Close)

	return &OrchestrationMCPServer{
		config:       &Config{ReadOnly: readOnly},
		dbService:    dbService,
		orchestrator: orchestrator,
	}
}

func TestAllToolsAreExposed(t *testing.T) {
	server := newTestServer(t, false)

	deps := &tools.ToolDependencies{
		DBService:    server.dbService,
		Orchestrator: server.orchestrator,
	}
	toolDefs := server.getAllToolsDefs(deps)

	if len(toolDefs) == 0 {
		t.Fatal("No tools found")
	}

	expectedTools := map[string]bool{
		"ask-graph":         false,
		"suggest-filters":   false,
		"get-query-history": false,
		"clear-context":     false,
	}

	for _, toolDef := range toolDefs {
		name := toolDef.definition.Tool.Name
		if _, exists := expectedTools[name]; exists {
			expectedTools[name] = true
		}
	}

	for toolName, found := range expectedTools {
		if !found {
			t.Errorf("Expected tool not found: %s", toolName)
		}
	}
}

func TestReadOnlyModeExcludesMutatingTools(t *testing.T) {
	server := newTestServer(t, true)

	enabled := server.getEnabledTools()
	if len(enabled) == 0 {
		t.Fatal("No tools enabled in read-only mode")
	}

	for _, tool := range enabled {
		if tool.Tool.Name == "clear-context" {
			t.Error("clear-context should be excluded in read-only mode")
		}
	}

	if len(enabled) != 3 {
		t.Errorf("Expected 3 read-only tools, got %d", len(enabled))
	}
}

func TestToolsHaveCorrectStructure(t *testing.T) {
	server := newTestServer(t, false)

	deps := &tools.ToolDependencies{
		DBService:    server.dbService,
		Orchestrator: server.orchestrator,
	}
	toolDefs := server.getAllToolsDefs(deps)

	for _, toolDef := range toolDefs {
		tool := toolDef.definition.Tool
		t.Logf("Checking tool: %s", tool.Name)

		if tool.Name == "" {
			t.Errorf("Tool has empty name")
		}

		if tool.Description == "" {
			t.Errorf("Tool %s has empty description", tool.Name)
		}

		if toolDef.definition.Handler == nil {
			t.Errorf("Tool %s has nil handler", tool.Name)
		}
	}
}
