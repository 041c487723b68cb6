package migrations

// This Go migration replaces the SQL version because timestamp column types
// differ by database driver (TEXT-affinity TIMESTAMP for SQLite, TIMESTAMPTZ
// for PostgreSQL, DATETIME(6) for MySQL).
//
// username, email, and google_id are nullable UNIQUE columns: all three
// drivers exempt NULLs from the unique index, which gives the sparse-unique
// semantics the account model needs (provider-only accounts have no local
// username, local accounts have no google_id).

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateUsers, downCreateUsers)
}

func upCreateUsers(ctx context.Context, tx *sql.Tx) error {
	var ddl string
	switch dialect {
	case "postgres":
		ddl = `CREATE TABLE IF NOT EXISTS users (
    id            TEXT PRIMARY KEY,
    username      TEXT UNIQUE,
    email         TEXT UNIQUE,
    password_hash TEXT,
    google_id     TEXT UNIQUE,
    created_at    TIMESTAMPTZ NOT NULL,
    updated_at    TIMESTAMPTZ NOT NULL
)`
	case "mysql":
		ddl = `CREATE TABLE IF NOT EXISTS users (
    id            VARCHAR(36) PRIMARY KEY,
    username      VARCHAR(255) UNIQUE,
    email         VARCHAR(255) UNIQUE,
    password_hash TEXT,
    google_id     VARCHAR(255) UNIQUE,
    created_at    DATETIME(6) NOT NULL,
    updated_at    DATETIME(6) NOT NULL
)`
	default: // sqlite3
		ddl = `CREATE TABLE IF NOT EXISTS users (
    id            TEXT PRIMARY KEY,
    username      TEXT UNIQUE,
    email         TEXT UNIQUE,
    password_hash TEXT,
    google_id     TEXT UNIQUE,
    created_at    TIMESTAMP NOT NULL,
    updated_at    TIMESTAMP NOT NULL
)`
	}
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func downCreateUsers(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS users`)
	return err
}
