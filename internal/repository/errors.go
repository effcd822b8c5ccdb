package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrConflict marks a unique-constraint race, e.g. two concurrent
	// uploads creating the same course. The batch rolled back and can
	// be retried as-is.
	ErrConflict = errors.New("conflicting concurrent write, retry the upload")

	// ErrInvalidValue marks a check-constraint rejection (negative
	// score, non-positive max_score) that slipped past row validation.
	ErrInvalidValue = errors.New("value rejected by storage constraints")
)

const (
	codeUniqueViolation = "23505"
	codeCheckViolation  = "23514"
)

// mapPgError converts storage-engine constraint failures into sentinel
// errors so raw Postgres errors never reach API clients.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return ErrConflict
		case codeCheckViolation:
			return ErrInvalidValue
		}
	}
	return err
}
