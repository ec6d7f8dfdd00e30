// Package postgres implements database.DB on top of pgxpool.
package postgres

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pgraph-io/pgraph/internal/database"
	"github.com/pgraph-io/pgraph/internal/errs"
)

// Driver is a PostgreSQL implementation of database.DB backed by pgxpool.
// It is safe for concurrent use by multiple goroutines.
type Driver struct {
	pool *pgxpool.Pool

	// ownsPool is false when the pool was supplied by the caller; Close is
	// then a no-op so callers keep their connection.
	ownsPool bool
}

// New connects to PostgreSQL using the provided Config and returns a
// Driver. It pings to validate the connection before returning.
func New(ctx context.Context, cfg *database.Config) (*Driver, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.ConnString())
	if err != nil {
		return nil, errs.Wrap(errs.KindConfig, "invalid connection config", err)
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.MaxConnIdleTime > 0 {
		poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	if cfg.ConnectTimeout > 0 {
		poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, errs.Wrap(errs.KindConnection, "failed to create connection pool", err)
	}

	d := &Driver{pool: pool, ownsPool: true}
	if err := d.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return d, nil
}

// FromPool wraps an existing pool. Ownership stays with the caller: Close
// does not drain it.
func FromPool(pool *pgxpool.Pool) *Driver {
	return &Driver{pool: pool}
}

// Ping verifies the database is reachable.
func (d *Driver) Ping(ctx context.Context) error {
	if err := d.pool.Ping(ctx); err != nil {
		return database.MapError(err, "ping failed")
	}
	return nil
}

// Close drains the pool when the driver owns it.
func (d *Driver) Close() {
	if d.ownsPool {
		d.pool.Close()
	}
}

// Query executes a SQL statement that returns multiple rows.
func (d *Driver) Query(ctx context.Context, sql string, args ...any) (database.Rows, error) {
	rows, err := d.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, database.MapError(err, "query failed")
	}
	return &pgxRows{rows: rows}, nil
}

// QueryRow executes a SQL statement expected to return at most one row.
func (d *Driver) QueryRow(ctx context.Context, sql string, args ...any) database.Row {
	return &pgxRow{row: d.pool.QueryRow(ctx, sql, args...)}
}

// ServerVersionNum probes current_setting('server_version_num').
func (d *Driver) ServerVersionNum(ctx context.Context) (int, error) {
	var raw string
	if err := d.pool.QueryRow(ctx, `SELECT current_setting('server_version_num')`).Scan(&raw); err != nil {
		return 0, database.MapError(err, "failed to read server version")
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.Wrap(errs.KindQuery, "unparseable server_version_num", err)
	}
	return n, nil
}

// ServerVersion returns the human-readable server version string.
func (d *Driver) ServerVersion(ctx context.Context) (string, error) {
	var v string
	if err := d.pool.QueryRow(ctx, `SELECT current_setting('server_version')`).Scan(&v); err != nil {
		return "", database.MapError(err, "failed to read server version")
	}
	return v, nil
}

// CurrentDatabase returns the connected database's name.
func (d *Driver) CurrentDatabase(ctx context.Context) (string, error) {
	var name string
	if err := d.pool.QueryRow(ctx, `SELECT current_database()`).Scan(&name); err != nil {
		return "", database.MapError(err, "failed to read current database")
	}
	return name, nil
}

// --- pgx type wrappers ---

type pgxRows struct {
	rows pgx.Rows
}

func (r *pgxRows) Next() bool             { return r.rows.Next() }
func (r *pgxRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r *pgxRows) Close()                 { r.rows.Close() }
func (r *pgxRows) Err() error             { return database.MapError(r.rows.Err(), "row iteration failed") }

type pgxRow struct {
	row pgx.Row
}

func (r *pgxRow) Scan(dest ...any) error { return r.row.Scan(dest...) }
