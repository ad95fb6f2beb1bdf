// Package database provides the database abstraction layer for the MAHOSTAV API.
//
// The Database interface wraps SurrealDB so repositories can be tested
// against a fake and the service layer never sees driver types.
//
// # Query Methods
//
//   - Query: returns every statement result (SELECT lists, multi-statement scripts)
//   - QueryOne: returns the first row of the first statement, or a scalar for RETURN
//   - Execute: runs a mutation and discards the result
//
// # Atomic Writes
//
// Transactions are batch-based. Statements are accumulated with AtomicBatch or
// TxBuilder and sent as one BEGIN TRANSACTION / COMMIT TRANSACTION script, so
// either every statement applies or none does. Team registration uses this to
// write a team row and its member rows together.
//
// # Errors
//
//	if errors.Is(err, database.ErrNotFound) {
//	    // Handle missing record
//	}
package database

import (
	"context"
	"errors"
)

// Standard errors for database operations.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a unique index violation.
	ErrDuplicate = errors.New("duplicate record")

	// ErrConnection indicates a failure to connect to or communicate with the database.
	ErrConnection = errors.New("database connection error")

	// ErrQuery indicates a query execution failure.
	ErrQuery = errors.New("query error")
)

// Database defines the interface for database operations
type Database interface {
	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Query executes a query and returns one {status, result} entry per statement
	Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)

	// QueryOne executes a query and returns a single result
	QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)

	// Execute runs a query without returning results (for mutations)
	Execute(ctx context.Context, query string, vars map[string]interface{}) error
}

// Config holds database configuration
type Config struct {
	Host      string
	Port      string
	User      string
	Password  string
	Namespace string
	Database  string
}
