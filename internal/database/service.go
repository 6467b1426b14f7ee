// Package database provides the Neo4j access layer. Everything above it
// depends on the Service interface, never on the driver directly.
package database

//go:generate mockgen -destination=mocks/mock_database.go -package=database_mocks github.com/gcakvpt/neo4j-orchestration-framework/internal/database Service

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Service is the database capability consumed by the query pipeline.
type Service interface {
	// ExecuteReadQuery runs a read-only Cypher query with bound parameters.
	ExecuteReadQuery(ctx context.Context, query string, params map[string]any) ([]*neo4j.Record, error)

	// ExecuteWriteQuery runs a mutating Cypher query in a write transaction.
	ExecuteWriteQuery(ctx context.Context, query string, params map[string]any) ([]*neo4j.Record, error)

	// GetDatabaseName returns the target database name.
	GetDatabaseName() string

	// VerifyConnectivity checks that the database is reachable.
	VerifyConnectivity(ctx context.Context) error

	// Close releases the underlying driver.
	Close(ctx context.Context) error
}
