// Package server wires the query pipeline into an MCP server exposed over
// stdio, with an optional Prometheus metrics endpoint.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gcakvpt/neo4j-orchestration-framework/internal/database"
	"github.com/gcakvpt/neo4j-orchestration-framework/internal/metric"
	"github.com/gcakvpt/neo4j-orchestration-framework/internal/orchestration"
	"github.com/gcakvpt/neo4j-orchestration-framework/internal/planning"
	"github.com/gcakvpt/neo4j-orchestration-framework/packs"
)

// OrchestrationMCPServer is the MCP server for natural language graph
// queries.
type OrchestrationMCPServer struct {
	MCPServer *server.MCPServer

	config       *Config
	dbService    database.Service
	orchestrator *orchestration.Orchestrator
	metrics      *metric.Metrics
	registry     *prometheus.Registry
	metricsSrv   *http.Server
}

// NewServer builds the server: classifier extended with pattern packs,
// orchestrator over dbService, and the MCP tool surface.
func NewServer(dbService database.Service, config *Config) (*OrchestrationMCPServer, error) {
	if config == nil {
		config = ConfigFromEnv()
	}

	classifier, err := BuildClassifier(config.PackDir)
	if err != nil {
		return nil, fmt.Errorf("building classifier: %w", err)
	}

	metrics := metric.NewMetrics()
	orchestrator, err := orchestration.NewOrchestrator(classifier, orchestration.Dependencies{
		DB:      dbService,
		Metrics: metrics,
	}, config.Orchestrator)
	if err != nil {
		return nil, fmt.Errorf("building orchestrator: %w", err)
	}

	s := &OrchestrationMCPServer{
		MCPServer: server.NewMCPServer(
			serverName,
			serverVersion,
			server.WithToolCapabilities(true),
			server.WithLogging(),
		),
		config:       config,
		dbService:    dbService,
		orchestrator: orchestrator,
		metrics:      metrics,
		registry:     metric.NewRegistry(metrics),
	}

	if err := s.registerTools(); err != nil {
		orchestrator.Close()
		return nil, fmt.Errorf("registering tools: %w", err)
	}
	return s, nil
}

// Orchestrator exposes the underlying pipeline, mainly for tests and the
// CLI.
func (s *OrchestrationMCPServer) Orchestrator() *orchestration.Orchestrator {
	return s.orchestrator
}

// Serve runs the MCP server over stdio until the client disconnects. When a
// metrics address is configured, the Prometheus endpoint runs alongside.
func (s *OrchestrationMCPServer) Serve() error {
	if s.config.MetricsAddr != "" {
		s.startMetricsEndpoint()
	}
	slog.Info("starting MCP server",
		"name", serverName,
		"version", serverVersion,
		"read_only", s.config.ReadOnly)
	return server.ServeStdio(s.MCPServer)
}

// Close releases the orchestrator and stops the metrics endpoint. The
// database service is owned by the caller.
func (s *OrchestrationMCPServer) Close(ctx context.Context) error {
	s.orchestrator.Close()
	if s.metricsSrv != nil {
		return s.metricsSrv.Shutdown(ctx)
	}
	return nil
}

func (s *OrchestrationMCPServer) startMetricsEndpoint() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	s.metricsSrv = &http.Server{
		Addr:              s.config.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		slog.Info("serving metrics", "addr", s.config.MetricsAddr)
		if err := s.metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics endpoint failed", "error", err)
		}
	}()
}

// BuildClassifier creates the intent classifier and extends it with
// pattern packs, preferring the embedded packs and falling back to packDir.
func BuildClassifier(packDir string) (*planning.Classifier, error) {
	planning.EmbeddedPacks = packs.PackFiles

	classifier := planning.NewClassifier()
	loaded, err := planning.LoadPacks(packDir)
	if err != nil {
		return nil, err
	}
	for _, pack := range loaded {
		classifier.ApplyPack(pack)
		slog.Info("applied pattern pack", "pack", pack.Name)
	}
	return classifier, nil
}
