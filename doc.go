// Package pgraph introspects a live PostgreSQL database and materializes an
// in-memory, navigable object graph of its schema: schemas, types, tables,
// views, materialized views, sequences, columns, indexes, constraints,
// functions, and triggers.
//
// The graph is queryable by name, OID, or ordinal position, exposes
// cross-links (a foreign key knows its source and target tables, its index,
// and its columns), and is serializable so consumers can reconstruct the
// model offline.
//
// Basic usage:
//
//	db, err := pgraph.FromConnectionString(ctx, "postgres://localhost/app", nil)
//	if err != nil { ... }
//
//	col, err := db.Get("public.account.id")
//	schema, _ := db.Schemas.MaybeGet("public")
//
// A built Db is never mutated; it is safe to share across goroutines.
package pgraph
