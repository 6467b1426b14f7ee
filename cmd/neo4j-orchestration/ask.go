package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gcakvpt/neo4j-orchestration-framework/internal/database"
	"github.com/gcakvpt/neo4j-orchestration-framework/internal/orchestration"
	"github.com/gcakvpt/neo4j-orchestration-framework/internal/server"
)

var (
	askExplain bool
	askSession string
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a single natural language question",
	Long: `Classifies the question, generates Cypher, executes it, and prints
the result as JSON.

With --explain, the generated Cypher and parameters are printed without
touching the database.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askExplain, "explain", false, "Print the generated Cypher without executing it")
	askCmd.Flags().StringVar(&askSession, "session", "", "Session ID for context and pattern learning")
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	question := args[0]

	dbConfig := database.ConfigFromEnv()
	dbService, err := database.NewService(ctx, dbConfig)
	if err != nil {
		return fmt.Errorf("connecting to neo4j: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = dbService.Close(shutdownCtx)
	}()

	classifier, err := server.BuildClassifier("")
	if err != nil {
		return fmt.Errorf("building classifier: %w", err)
	}

	cfg := orchestration.DefaultConfig()
	cfg.SessionID = askSession
	orchestrator, err := orchestration.NewOrchestrator(classifier, orchestration.Dependencies{DB: dbService}, cfg)
	if err != nil {
		return fmt.Errorf("building orchestrator: %w", err)
	}
	defer orchestrator.Close()

	if askExplain {
		intent, cypher, params, err := orchestrator.Plan(ctx, question)
		if err != nil {
			return err
		}
		return printJSON(cmd, map[string]any{
			"intent":     intent.ToMap(),
			"cypher":     cypher,
			"parameters": params,
		})
	}

	result, err := orchestrator.Query(ctx, question)
	if err != nil {
		return err
	}
	return printJSON(cmd, map[string]any{
		"records":        result.Records,
		"record_count":   result.Summary.RecordCount,
		"cypher":         result.Cypher,
		"parameters":     result.Parameters,
		"execution_time": result.ExecutionTime.Round(time.Millisecond).String(),
	})
}

func printJSON(cmd *cobra.Command, payload map[string]any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
