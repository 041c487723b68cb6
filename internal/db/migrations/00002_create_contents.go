package migrations

// Content items plus the tag tables. The content API always writes an empty
// tag set, but the schema keeps the tables so existing rows survive when the
// tag write-path lands.

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateContents, downCreateContents)
}

func upCreateContents(ctx context.Context, tx *sql.Tx) error {
	var stmts []string
	switch dialect {
	case "postgres":
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS contents (
    id         TEXT PRIMARY KEY,
    title      TEXT NOT NULL DEFAULT '',
    link       TEXT NOT NULL DEFAULT '',
    type       TEXT NOT NULL DEFAULT '',
    owner_id   TEXT NOT NULL REFERENCES users(id),
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
)`,
			`CREATE TABLE IF NOT EXISTS tags (
    id   TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
)`,
			`CREATE TABLE IF NOT EXISTS content_tags (
    content_id TEXT NOT NULL REFERENCES contents(id),
    tag_id     TEXT NOT NULL REFERENCES tags(id),
    PRIMARY KEY (content_id, tag_id)
)`,
		}
	case "mysql":
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS contents (
    id         VARCHAR(36) PRIMARY KEY,
    title      TEXT NOT NULL,
    link       TEXT NOT NULL,
    type       VARCHAR(255) NOT NULL DEFAULT '',
    owner_id   VARCHAR(36) NOT NULL,
    created_at DATETIME(6) NOT NULL,
    updated_at DATETIME(6) NOT NULL,
    FOREIGN KEY (owner_id) REFERENCES users(id)
)`,
			`CREATE TABLE IF NOT EXISTS tags (
    id   VARCHAR(36) PRIMARY KEY,
    name VARCHAR(255) NOT NULL UNIQUE
)`,
			`CREATE TABLE IF NOT EXISTS content_tags (
    content_id VARCHAR(36) NOT NULL,
    tag_id     VARCHAR(36) NOT NULL,
    PRIMARY KEY (content_id, tag_id),
    FOREIGN KEY (content_id) REFERENCES contents(id),
    FOREIGN KEY (tag_id) REFERENCES tags(id)
)`,
		}
	default: // sqlite3
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS contents (
    id         TEXT PRIMARY KEY,
    title      TEXT NOT NULL DEFAULT '',
    link       TEXT NOT NULL DEFAULT '',
    type       TEXT NOT NULL DEFAULT '',
    owner_id   TEXT NOT NULL REFERENCES users(id),
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
)`,
			`CREATE TABLE IF NOT EXISTS tags (
    id   TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
)`,
			`CREATE TABLE IF NOT EXISTS content_tags (
    content_id TEXT NOT NULL REFERENCES contents(id),
    tag_id     TEXT NOT NULL REFERENCES tags(id),
    PRIMARY KEY (content_id, tag_id)
)`,
		}
	}

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create contents tables: %w", err)
		}
	}

	_, err := tx.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS contents_owner_idx ON contents (owner_id)`)
	return err
}

func downCreateContents(ctx context.Context, tx *sql.Tx) error {
	for _, stmt := range []string{
		`DROP TABLE IF EXISTS content_tags`,
		`DROP TABLE IF EXISTS tags`,
		`DROP TABLE IF EXISTS contents`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
