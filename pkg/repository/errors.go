package repository

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// ErrUnavailable marks errors caused by a lost or failed database
// connection rather than by the statement itself.
var ErrUnavailable = errors.New("database unavailable")

// MapError translates low-level database errors to domain errors:
// sql.ErrNoRows becomes notFound, a PostgreSQL unique violation becomes
// conflict, and connection failures wrap ErrUnavailable. Anything else
// passes through unchanged.
func MapError(err error, notFound, conflict error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return conflict
	}

	var connErr *pgconn.ConnectError
	if errors.Is(err, driver.ErrBadConn) || errors.As(err, &connErr) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return err
}
