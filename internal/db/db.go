// Package db provides PostgreSQL access for the hearing-prep pipeline:
// read-only hearing and GAO report data, ranked full-text report search, and
// the versioned prep sheet store.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// PersistenceError is fatal to the request: a write failed, so even a
// successful generation leaves no retrievable artifact behind.
type PersistenceError struct {
	Op    string
	Cause error
}

func (e *PersistenceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("persistence failed during %s: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("persistence failed during %s", e.Op)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}
