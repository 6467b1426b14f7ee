package server

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/gcakvpt/neo4j-orchestration-framework/internal/tools"
	"github.com/gcakvpt/neo4j-orchestration-framework/internal/tools/query/ask"
	"github.com/gcakvpt/neo4j-orchestration-framework/internal/tools/query/suggest"
	"github.com/gcakvpt/neo4j-orchestration-framework/internal/tools/session/clear"
	"github.com/gcakvpt/neo4j-orchestration-framework/internal/tools/session/history"
)

// registerTools registers all enabled MCP tools and adds them to the provided MCP server.
// Tools are filtered according to the server configuration. For example, when the read-only
// mode is enabled (e.g. via the NEO4J_READ_ONLY environment variable or the Config.ReadOnly flag),
// any tool that performs state mutation will be excluded; only tools annotated as read-only will be registered.
// Note: this read-only filtering relies on the tool annotation "readonly" (ReadOnlyHint). If the annotation
// is not defined or is set to false, the tool will be added (i.e., only tools with readonly=true are filtered in read-only mode).
func (s *OrchestrationMCPServer) registerTools() error {
	filteredTools := s.getEnabledTools()
	s.MCPServer.AddTools(filteredTools...)
	return nil
}

type toolFilter func(tools []ToolDefinition) []ToolDefinition

type toolCategory int

const (
	queryCategory   toolCategory = 0 // Natural language query tools
	sessionCategory toolCategory = 1 // Session and context management tools
)

type ToolDefinition struct {
	category   toolCategory
	definition server.ServerTool
	readonly   bool
}

func (s *OrchestrationMCPServer) getEnabledTools() []server.ServerTool {
	filters := make([]toolFilter, 0)

	// If read-only mode is enabled, expose only tools annotated as read-only.
	if s.config != nil && s.config.ReadOnly {
		filters = append(filters, filterWriteTools)
	}
	deps := &tools.ToolDependencies{
		DBService:    s.dbService,
		Orchestrator: s.orchestrator,
	}
	toolDefs := s.getAllToolsDefs(deps)

	for _, filter := range filters {
		toolDefs = filter(toolDefs)
	}
	enabledTools := make([]server.ServerTool, 0)
	for _, toolDef := range toolDefs {
		enabledTools = append(enabledTools, toolDef.definition)
	}
	return enabledTools
}

func filterWriteTools(tools []ToolDefinition) []ToolDefinition {
	readOnlyTools := make([]ToolDefinition, 0, len(tools))
	for _, t := range tools {
		if t.readonly {
			readOnlyTools = append(readOnlyTools, t)
		}
	}
	return readOnlyTools
}

// getAllToolsDefs returns all available tools with their specs and handlers
func (s *OrchestrationMCPServer) getAllToolsDefs(deps *tools.ToolDependencies) []ToolDefinition {
	return []ToolDefinition{
		{
			category: queryCategory,
			definition: server.ServerTool{
				Tool:    ask.Spec(),
				Handler: ask.Handler(deps),
			},
			readonly: true,
		},
		{
			category: queryCategory,
			definition: server.ServerTool{
				Tool:    suggest.Spec(),
				Handler: suggest.Handler(deps),
			},
			readonly: true,
		},
		{
			category: sessionCategory,
			definition: server.ServerTool{
				Tool:    history.Spec(),
				Handler: history.Handler(deps),
			},
			readonly: true,
		},
		// clear-context mutates conversation state, so it is excluded in
		// read-only mode.
		{
			category: sessionCategory,
			definition: server.ServerTool{
				Tool:    clear.Spec(),
				Handler: clear.Handler(deps),
			},
			readonly: false,
		},
	}
}
