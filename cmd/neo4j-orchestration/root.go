package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "neo4j-orchestration",
	Short: "Natural language query planning for Neo4j",
	Long: `neo4j-orchestration translates natural language questions into
parameterized Cypher queries and executes them against a Neo4j graph.

Run "serve" to expose the pipeline as an MCP server over stdio, or "ask"
to answer a single question from the command line.

Connection settings come from the environment: NEO4J_URI, NEO4J_USERNAME,
NEO4J_PASSWORD, NEO4J_DATABASE.`,
	PersistentPreRun: setupLogging,
	SilenceUsage:     true,
	SilenceErrors:    true,
}

// Execute runs the root command with signal handling.
func Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

func setupLogging(cmd *cobra.Command, args []string) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	// MCP traffic owns stdout, so logs go to stderr.
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(askCmd)
}
