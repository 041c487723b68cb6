package store

import (
	"database/sql"
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when an insert violates a unique constraint.
	ErrDuplicate = errors.New("already exists")
)

// isUniqueConstraintError checks whether err indicates a unique constraint violation.
// Works across SQLite, PostgreSQL, and MySQL.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || // SQLite & PostgreSQL
		strings.Contains(msg, "duplicate key") || // PostgreSQL
		strings.Contains(msg, "duplicate entry") // MySQL
}

// nullString converts an optional value to sql.NullString, mapping "" to NULL
// so sparse unique indexes ignore absent values.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
