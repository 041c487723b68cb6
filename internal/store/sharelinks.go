package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ShareLink represents a row in the share_links table. Each user has at most
// one, enforced by the unique index on owner_id.
type ShareLink struct {
	ID        string    `db:"id"`
	Hash      string    `db:"hash"`
	OwnerID   string    `db:"owner_id"`
	CreatedAt time.Time `db:"created_at"`
}

type ShareLinkStore struct {
	db *sqlx.DB
}

func NewShareLinkStore(db *sqlx.DB) *ShareLinkStore {
	return &ShareLinkStore{db: db}
}

func (s *ShareLinkStore) GetByOwner(ctx context.Context, ownerID string) (*ShareLink, error) {
	var l ShareLink
	err := s.db.GetContext(ctx, &l, s.db.Rebind(`SELECT * FROM share_links WHERE owner_id = ?`), ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *ShareLinkStore) GetByHash(ctx context.Context, hash string) (*ShareLink, error) {
	var l ShareLink
	err := s.db.GetContext(ctx, &l, s.db.Rebind(`SELECT * FROM share_links WHERE hash = ?`), hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create inserts a share link for ownerID. If a concurrent request won the
// insert race, the existing link is returned instead of an error, so enable
// is idempotent even across racing writers.
func (s *ShareLinkStore) Create(ctx context.Context, ownerID, hash string) (*ShareLink, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO share_links (id, hash, owner_id, created_at)
		VALUES (?, ?, ?, ?)
	`), id, hash, ownerID, time.Now().UTC())
	if err != nil {
		if isUniqueConstraintError(err) {
			return s.GetByOwner(ctx, ownerID)
		}
		return nil, err
	}
	return s.GetByOwner(ctx, ownerID)
}

// DeleteByOwner removes the owner's share link. Deleting a non-existent link
// is not an error.
func (s *ShareLinkStore) DeleteByOwner(ctx context.Context, ownerID string) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM share_links WHERE owner_id = ?`), ownerID)
	return err
}
