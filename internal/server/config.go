package server

import (
	"os"
	"strconv"

	"github.com/gcakvpt/neo4j-orchestration-framework/internal/orchestration"
)

const (
	serverName    = "neo4j-orchestration"
	serverVersion = "1.0.0"
)

// Config controls the MCP server surface.
type Config struct {
	// ReadOnly excludes any tool that mutates server or session state.
	ReadOnly bool

	// PackDir points at a directory of pattern pack YAML files. Empty means
	// only the embedded packs are loaded.
	PackDir string

	// MetricsAddr is the listen address for the Prometheus metrics endpoint.
	// Empty disables the endpoint.
	MetricsAddr string

	// Orchestrator configures the underlying query pipeline.
	Orchestrator orchestration.Config
}

// ConfigFromEnv builds a server config from the environment:
// NEO4J_READ_ONLY, ORCHESTRATION_PACK_DIR, ORCHESTRATION_METRICS_ADDR,
// ORCHESTRATION_SESSION_ID.
func ConfigFromEnv() *Config {
	cfg := &Config{
		PackDir:      os.Getenv("ORCHESTRATION_PACK_DIR"),
		MetricsAddr:  os.Getenv("ORCHESTRATION_METRICS_ADDR"),
		Orchestrator: orchestration.DefaultConfig(),
	}
	if v := os.Getenv("NEO4J_READ_ONLY"); v != "" {
		readOnly, err := strconv.ParseBool(v)
		cfg.ReadOnly = err == nil && readOnly
	}
	if v := os.Getenv("ORCHESTRATION_SESSION_ID"); v != "" {
		cfg.Orchestrator.SessionID = v
	}
	return cfg
}
