package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pgraph-io/pgraph/internal/errs"
)

// MapError translates pgx / pgconn native errors into *errs.Error.
// SQLSTATE class 08 is a connection failure; everything else from the
// server is a query failure.
func MapError(err error, msg string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.KindTimeout, msg, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return errs.Wrap(errs.KindQuery, msg+": no rows", err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		kind := errs.KindQuery
		if len(pgErr.Code) >= 2 && pgErr.Code[:2] == "08" {
			kind = errs.KindConnection
		}
		return errs.Wrap(kind, fmt.Sprintf("%s: %s", msg, pgErr.Message), err)
	}

	// Connection-level errors (TLS, network, auth).
	return errs.Wrap(errs.KindConnection, msg, err)
}
