package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Content represents a row in the contents table.
type Content struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	Link      string    `db:"link"`
	Type      string    `db:"type"`
	OwnerID   string    `db:"owner_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ContentWithOwner is a content row joined with the owning user's username,
// for listings that expand the owner reference.
type ContentWithOwner struct {
	Content
	OwnerUsername string `db:"owner_username"`
}

type ContentStore struct {
	db *sqlx.DB
}

func NewContentStore(db *sqlx.DB) *ContentStore {
	return &ContentStore{db: db}
}

// Create inserts a content item owned by ownerID. No field validation is
// performed here; empty titles, links, and types are stored as-is.
func (s *ContentStore) Create(ctx context.Context, ownerID, title, link, typ string) (*Content, error) {
	id := uuid.New().String()
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO contents (id, title, link, type, owner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`), id, title, link, typ, ownerID, now, now)
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *ContentStore) GetByID(ctx context.Context, id string) (*Content, error) {
	var c Content
	err := s.db.GetContext(ctx, &c, s.db.Rebind(`SELECT * FROM contents WHERE id = ?`), id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByOwner returns all content owned by ownerID, newest last, with the
// owner's username joined in.
func (s *ContentStore) ListByOwner(ctx context.Context, ownerID string) ([]*ContentWithOwner, error) {
	var items []*ContentWithOwner
	err := s.db.SelectContext(ctx, &items, s.db.Rebind(`
		SELECT c.id, c.title, c.link, c.type, c.owner_id, c.created_at, c.updated_at,
		       COALESCE(u.username, '') AS owner_username
		FROM contents c
		JOIN users u ON u.id = c.owner_id
		WHERE c.owner_id = ?
		ORDER BY c.created_at ASC, c.id ASC
	`), ownerID)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes the content item only when both the id and the owner match.
// Returns ErrNotFound when nothing was deleted, whether the id does not exist
// or the row belongs to someone else; callers cannot tell the two apart.
func (s *ContentStore) Delete(ctx context.Context, id, ownerID string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`
		DELETE FROM contents WHERE id = ? AND owner_id = ?
	`), id, ownerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
