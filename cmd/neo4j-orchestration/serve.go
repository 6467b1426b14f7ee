package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/gcakvpt/neo4j-orchestration-framework/internal/database"
	"github.com/gcakvpt/neo4j-orchestration-framework/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long: `Starts the MCP server, exposing the natural language query tools
(ask-graph, suggest-filters, get-query-history, clear-context) over stdio.

Set NEO4J_READ_ONLY=true to exclude tools that mutate session state, and
ORCHESTRATION_METRICS_ADDR (e.g. ":9090") to expose Prometheus metrics.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	dbConfig := database.ConfigFromEnv()
	dbService, err := database.NewService(ctx, dbConfig)
	if err != nil {
		return fmt.Errorf("connecting to neo4j: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := dbService.Close(shutdownCtx); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	mcpServer, err := server.NewServer(dbService, server.ConfigFromEnv())
	if err != nil {
		return fmt.Errorf("building server: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := mcpServer.Close(shutdownCtx); err != nil {
			slog.Error("failed to close server", "error", err)
		}
	}()

	slog.Info("connected to neo4j", "database", dbService.GetDatabaseName())
	return mcpServer.Serve()
}
