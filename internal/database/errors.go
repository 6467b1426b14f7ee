package database

import (
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// ConnectivityError reports that the database could not be reached or the
// session was lost. Distinguishable from QueryError so callers can decide
// between retrying and surfacing a bad query.
type ConnectivityError struct {
	Op  string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("neo4j connectivity error during %s: %v", e.Op, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// QueryError reports that a query itself failed: syntax, constraint, or
// semantic errors coming back from the server.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("neo4j query error: %v", e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// classifyError wraps a driver error into the connectivity-vs-query
// taxonomy.
func classifyError(op, query string, err error) error {
	if neo4j.IsConnectivityError(err) {
		return &ConnectivityError{Op: op, Err: err}
	}
	return &QueryError{Query: query, Err: err}
}
