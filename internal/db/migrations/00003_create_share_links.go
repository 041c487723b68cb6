package migrations

// The UNIQUE constraint on owner_id enforces one share link per user at the
// database level, so two concurrent enable-share requests cannot both insert.
// The losing writer re-reads and returns the winner's hash.

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateShareLinks, downCreateShareLinks)
}

func upCreateShareLinks(ctx context.Context, tx *sql.Tx) error {
	var ddl string
	switch dialect {
	case "postgres":
		ddl = `CREATE TABLE IF NOT EXISTS share_links (
    id         TEXT PRIMARY KEY,
    hash       TEXT NOT NULL UNIQUE,
    owner_id   TEXT NOT NULL UNIQUE REFERENCES users(id),
    created_at TIMESTAMPTZ NOT NULL
)`
	case "mysql":
		ddl = `CREATE TABLE IF NOT EXISTS share_links (
    id         VARCHAR(36) PRIMARY KEY,
    hash       VARCHAR(64) NOT NULL UNIQUE,
    owner_id   VARCHAR(36) NOT NULL UNIQUE,
    created_at DATETIME(6) NOT NULL,
    FOREIGN KEY (owner_id) REFERENCES users(id)
)`
	default: // sqlite3
		ddl = `CREATE TABLE IF NOT EXISTS share_links (
    id         TEXT PRIMARY KEY,
    hash       TEXT NOT NULL UNIQUE,
    owner_id   TEXT NOT NULL UNIQUE REFERENCES users(id),
    created_at TIMESTAMP NOT NULL
)`
	}
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create share_links table: %w", err)
	}
	return nil
}

func downCreateShareLinks(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS share_links`)
	return err
}
