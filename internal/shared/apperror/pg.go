package apperror

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// UniqueViolation returns the name of the unique constraint err violated.
// Errors that lost their *pgconn.PgError on the way up are matched on the
// driver message instead.
func UniqueViolation(err error) (constraint string, ok bool) {
	if err == nil {
		return "", false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName, pgErr.Code == pgUniqueViolation
	}

	msg := err.Error()
	if !strings.Contains(msg, "duplicate key value") {
		return "", false
	}
	_, rest, found := strings.Cut(msg, `unique constraint "`)
	if !found {
		return "", true
	}
	name, _, _ := strings.Cut(rest, `"`)
	return name, true
}
