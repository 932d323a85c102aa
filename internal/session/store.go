// Package session persists the single opaque session token and gates the
// dashboard behind the credential check. There is no real authentication
// here: one well-known user, one token slot.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// TokenKey is the well-known storage key the session token lives under.
const TokenKey = "smartspend_token"

// Store is the SQLite-backed token store.
type Store struct {
	db *sql.DB
}

func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save stores a token under key, replacing any previous one.
func (s *Store) Save(ctx context.Context, key, token string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO session_tokens (key, token) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET token = excluded.token, created_at = CURRENT_TIMESTAMP`,
		key, token)
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// Load reads the token stored under key. The second return value reports
// whether one exists.
func (s *Store) Load(ctx context.Context, key string) (string, bool, error) {
	var token string
	err := s.db.QueryRowContext(ctx,
		`SELECT token FROM session_tokens WHERE key = ?`, key).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load token: %w", err)
	}
	return token, true, nil
}

// Clear removes the token stored under key. Clearing an absent token is
// not an error.
func (s *Store) Clear(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM session_tokens WHERE key = ?`, key); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}
