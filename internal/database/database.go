// Package database defines the narrow contract the catalog reader needs
// from a PostgreSQL connection. Layers above this package never import the
// driver directly.
package database

import "context"

// DB is the read-only connection contract. pgraph issues only catalog
// SELECTs through it.
type DB interface {
	// Ping verifies the database is reachable.
	Ping(ctx context.Context) error

	// Close releases all resources held by the connection.
	Close()

	// Query executes a SQL statement that returns multiple rows.
	Query(ctx context.Context, sql string, args ...any) (Rows, error)

	// QueryRow executes a SQL statement that returns at most one row.
	QueryRow(ctx context.Context, sql string, args ...any) Row

	// ServerVersionNum returns the server's version as the numeric
	// server_version_num setting (e.g. 150004).
	ServerVersionNum(ctx context.Context) (int, error)

	// ServerVersion returns the human-readable server version string.
	ServerVersion(ctx context.Context) (string, error)

	// CurrentDatabase returns the name of the connected database.
	CurrentDatabase(ctx context.Context) (string, error)
}

// Rows is an abstraction over a result set. Callers must always call
// Close, even on error.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close()
	Err() error
}

// Row is an abstraction over a single result row.
type Row interface {
	Scan(dest ...any) error
}
