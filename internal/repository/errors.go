package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Conflict sentinels returned by Create/Update when a unique index rejects
// the write. Callers decide which ones are retryable.
var (
	ErrStudentIDConflict = errors.New("student identifier already taken")
	ErrEmailConflict     = errors.New("email already registered")
	ErrUsernameConflict  = errors.New("username already taken")
)

// isUniqueViolation reports whether err is a unique-constraint violation on
// the named column. Postgres reports SQLSTATE 23505 with the index name in
// the constraint; the sqlite driver used in tests embeds the column in the
// error text.
func isUniqueViolation(err error, column string) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, column)
	}

	message := strings.ToLower(err.Error())
	if !strings.Contains(message, "unique") && !strings.Contains(message, "duplicate") {
		return false
	}
	return strings.Contains(message, column)
}
