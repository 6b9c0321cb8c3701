package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/akarpov/blogbox/internal/client/api"
	"github.com/akarpov/blogbox/internal/dbx"
)

const (
	keyToken = "token"
	keyUser  = "user"
)

// Store is the durable home of the session pair. Implementations must
// write and clear both values atomically so a reader never sees only one
// of them set.
type Store interface {
	Read(ctx context.Context) (Session, error)
	Write(ctx context.Context, s Session) error
	Clear(ctx context.Context) error
}

// SQLiteStore keeps the session in the metadata table of the local state
// database, under the "token" and "user" keys.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Read loads the stored session. A missing token yields an empty Session.
// A stored user blob that cannot be decoded degrades to an empty Session
// as well: corruption must not crash the reader, and the pair is never
// reported half-populated.
func (s *SQLiteStore) Read(ctx context.Context) (Session, error) {
	token, err := s.get(ctx, keyToken)
	if err != nil {
		return Session{}, err
	}
	if len(token) == 0 {
		return Session{}, nil
	}

	rawUser, err := s.get(ctx, keyUser)
	if err != nil {
		return Session{}, err
	}

	var user api.UserProfile
	if err := json.Unmarshal(rawUser, &user); err != nil || user.ID == "" {
		return Session{}, nil
	}

	return Session{Token: string(token), User: user}, nil
}

// Write persists both halves of the pair in one transaction.
func (s *SQLiteStore) Write(ctx context.Context, sess Session) error {
	rawUser, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := set(ctx, tx, keyToken, []byte(sess.Token)); err != nil {
			return err
		}
		return set(ctx, tx, keyUser, rawUser)
	})
}

// Clear removes both halves of the pair in one transaction. Clearing an
// already empty store is a no-op.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM metadata WHERE key IN (?, ?)`, keyToken, keyUser)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, nil
}

func set(ctx context.Context, tx dbx.DBTX, key string, value []byte) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}
