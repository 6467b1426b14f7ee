package tools

import (
	"github.com/gcakvpt/neo4j-orchestration-framework/internal/database"
	"github.com/gcakvpt/neo4j-orchestration-framework/internal/orchestration"
)

// ToolDependencies contains all dependencies needed by tools
type ToolDependencies struct {
	DBService    database.Service
	Orchestrator *orchestration.Orchestrator
}
