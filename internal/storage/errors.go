package storage

import (
	stderrors "errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/money-tracker/internal/errors"
)

// Postgres SQLSTATE codes for the constraint violations this schema can raise.
const (
	pgCodeUniqueViolation     = "23505"
	pgCodeForeignKeyViolation = "23503"
	pgCodeCheckViolation      = "23514"
	pgCodeStringTruncation    = "22001"
	pgCodeNumericOutOfRange   = "22003"
)

// mapConstraintError translates a pgx error into a categorized error so
// callers can distinguish uniqueness, referential, and field violations
// without inspecting SQLSTATE themselves. Unrecognized errors come back as
// generic database errors tagged with the failing operation.
func mapConstraintError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgCodeUniqueViolation:
			return errors.NewUniqueViolationError(pgErr.ConstraintName, err)
		case pgCodeForeignKeyViolation:
			return errors.NewForeignKeyViolationError(pgErr.ConstraintName, err)
		case pgCodeCheckViolation:
			return errors.NewValidationError(pgErr.ConstraintName, "value not in the declared enumeration")
		case pgCodeStringTruncation:
			return errors.NewValidationError(pgErr.ColumnName, "value exceeds maximum length")
		case pgCodeNumericOutOfRange:
			return errors.NewValidationError(pgErr.ColumnName, "numeric value out of range")
		}
	}
	return errors.NewDatabaseError(operation, err)
}
