package pgutil

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jacksonlee411/jobly/pkg/httperr"
)

// DB is the slice of *pgxpool.Pool the stores use.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNotNullViolation    = "23502"
)

func Code(err error) string {
	if pgErr, ok := errors.AsType[*pgconn.PgError](err); ok && pgErr != nil {
		return strings.TrimSpace(pgErr.Code)
	}
	return ""
}

func IsUniqueViolation(err error) bool { return Code(err) == codeUniqueViolation }

func IsForeignKeyViolation(err error) bool { return Code(err) == codeForeignKeyViolation }

func IsInvalidInput(err error) bool {
	switch Code(err) {
	case "22P02", "22003", "22007", "22008", codeCheckViolation, codeNotNullViolation:
		return true
	default:
		return false
	}
}

// Translate maps a storage error onto the error taxonomy. missing is used for absent rows and
// dangling references, conflict for unique violations. Other errors are returned unchanged.
func Translate(err error, missing string, conflict string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows), IsForeignKeyViolation(err):
		return httperr.NewNotFound(missing)
	case IsUniqueViolation(err):
		return httperr.NewConflict(conflict)
	case IsInvalidInput(err):
		return httperr.NewBadRequest(invalidInputMessage(err))
	default:
		return err
	}
}

func invalidInputMessage(err error) string {
	if pgErr, ok := errors.AsType[*pgconn.PgError](err); ok && pgErr != nil {
		if msg := strings.TrimSpace(pgErr.Message); msg != "" {
			return msg
		}
	}
	return "invalid input"
}
