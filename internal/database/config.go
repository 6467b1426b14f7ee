package database

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds Neo4j connection settings.
type Config struct {
	URI      string
	Username string
	Password string
	Database string

	MaxConnectionLifetime time.Duration
	MaxConnectionPoolSize int
	ConnectionTimeout     time.Duration
}

var validURIPrefixes = []string{"bolt://", "neo4j://", "bolt+s://", "neo4j+s://"}

// Validate checks required fields and the URI scheme.
func (c *Config) Validate() error {
	if c.URI == "" {
		return fmt.Errorf("neo4j URI is required")
	}
	if c.Username == "" {
		return fmt.Errorf("neo4j username is required")
	}
	if c.Password == "" {
		return fmt.Errorf("neo4j password is required")
	}
	for _, prefix := range validURIPrefixes {
		if strings.HasPrefix(c.URI, prefix) {
			return nil
		}
	}
	return fmt.Errorf("invalid neo4j URI %q: must start with one of %s",
		c.URI, strings.Join(validURIPrefixes, ", "))
}

// ConfigFromEnv reads connection settings from NEO4J_* environment
// variables, applying defaults for everything except credentials.
func ConfigFromEnv() *Config {
	cfg := &Config{
		URI:                   os.Getenv("NEO4J_URI"),
		Username:              os.Getenv("NEO4J_USERNAME"),
		Password:              os.Getenv("NEO4J_PASSWORD"),
		Database:              os.Getenv("NEO4J_DATABASE"),
		MaxConnectionLifetime: time.Hour,
		MaxConnectionPoolSize: 50,
		ConnectionTimeout:     30 * time.Second,
	}
	if cfg.Database == "" {
		cfg.Database = "neo4j"
	}
	return cfg
}
