package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// User represents a row in the users table. Username, Email, PasswordHash,
// and GoogleID are all nullable: local accounts have no google_id, and
// Google-created accounts have no password_hash (and no email when the
// provider withholds it). Every user has at least one of password_hash or
// google_id.
type User struct {
	ID           string         `db:"id"`
	Username     sql.NullString `db:"username"`
	Email        sql.NullString `db:"email"`
	PasswordHash sql.NullString `db:"password_hash"`
	GoogleID     sql.NullString `db:"google_id"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

type UserStore struct {
	db *sqlx.DB
}

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a local account with a username and password hash.
// Returns ErrDuplicate if the username is already taken.
func (s *UserStore) Create(ctx context.Context, username, passwordHash string) (*User, error) {
	id := uuid.New().String()
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO users (id, username, email, password_hash, google_id, created_at, updated_at)
		VALUES (?, ?, NULL, ?, NULL, ?, ?)
	`), id, username, passwordHash, now, now)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// CreateGoogleUser inserts an account backed only by a Google identity.
// The username comes from the provider display name and email may be absent.
func (s *UserStore) CreateGoogleUser(ctx context.Context, username, email, googleID string) (*User, error) {
	id := uuid.New().String()
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO users (id, username, email, password_hash, google_id, created_at, updated_at)
		VALUES (?, ?, ?, NULL, ?, ?, ?)
	`), id, nullString(username), nullString(email), googleID, now, now)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// LinkGoogleAccount attaches a Google identity to an existing user. The
// username is backfilled only when the account has none.
func (s *UserStore) LinkGoogleAccount(ctx context.Context, id, googleID, username string) (*User, error) {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		UPDATE users SET google_id = ?, username = COALESCE(username, ?), updated_at = ? WHERE id = ?
	`), googleID, nullString(username), time.Now().UTC(), id)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// SetEmail sets or replaces the user's email address.
// Returns ErrDuplicate if another account already owns it.
func (s *UserStore) SetEmail(ctx context.Context, id, email string) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		UPDATE users SET email = ?, updated_at = ? WHERE id = ?
	`), nullString(email), time.Now().UTC(), id)
	if isUniqueConstraintError(err) {
		return ErrDuplicate
	}
	return err
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*User, error) {
	return s.getWhere(ctx, `id = ?`, id)
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*User, error) {
	return s.getWhere(ctx, `username = ?`, username)
}

// GetByEmail returns the user matching email, or ErrNotFound.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.getWhere(ctx, `email = ?`, email)
}

// GetByGoogleID returns the user matching the Google subject id, or ErrNotFound.
func (s *UserStore) GetByGoogleID(ctx context.Context, googleID string) (*User, error) {
	return s.getWhere(ctx, `google_id = ?`, googleID)
}

func (s *UserStore) getWhere(ctx context.Context, where string, arg any) (*User, error) {
	var u User
	err := s.db.GetContext(ctx, &u, s.db.Rebind(`SELECT * FROM users WHERE `+where), arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
