package database

import (
	"context"
	"log/slog"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/config"
)

type neo4jService struct {
	driver   neo4j.DriverWithContext
	database string
}

// NewService connects to Neo4j and verifies connectivity before returning.
func NewService(ctx context.Context, cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	driver, err := neo4j.NewDriverWithContext(
		cfg.URI,
		neo4j.BasicAuth(cfg.Username, cfg.Password, ""),
		func(c *config.Config) {
			c.MaxConnectionLifetime = cfg.MaxConnectionLifetime
			c.MaxConnectionPoolSize = cfg.MaxConnectionPoolSize
			c.SocketConnectTimeout = cfg.ConnectionTimeout
		},
	)
	if err != nil {
		return nil, &ConnectivityError{Op: "connect", Err: err}
	}

	s := &neo4jService{driver: driver, database: cfg.Database}
	if err := s.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, err
	}

	slog.Info("connected to neo4j", "uri", cfg.URI, "database", cfg.Database)
	return s, nil
}

func (s *neo4jService) ExecuteReadQuery(ctx context.Context, query string, params map[string]any) ([]*neo4j.Record, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: s.database,
	})
	defer func() { _ = session.Close(ctx) }()

	records, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		return result.Collect(ctx)
	})
	if err != nil {
		return nil, classifyError("read", query, err)
	}
	return records.([]*neo4j.Record), nil
}

func (s *neo4jService) ExecuteWriteQuery(ctx context.Context, query string, params map[string]any) ([]*neo4j.Record, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: s.database,
	})
	defer func() { _ = session.Close(ctx) }()

	records, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		return result.Collect(ctx)
	})
	if err != nil {
		return nil, classifyError("write", query, err)
	}
	return records.([]*neo4j.Record), nil
}

func (s *neo4jService) GetDatabaseName() string { return s.database }

func (s *neo4jService) VerifyConnectivity(ctx context.Context) error {
	if err := s.driver.VerifyConnectivity(ctx); err != nil {
		return &ConnectivityError{Op: "verify connectivity", Err: err}
	}
	return nil
}

func (s *neo4jService) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}
