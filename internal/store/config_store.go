package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ConfigStore is a key/value table of single-document settings.
type ConfigStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewConfigStore(db *sql.DB) *ConfigStore {
	return &ConfigStore{db: db, now: time.Now}
}

// Set overwrites the value stored under key.
func (s *ConfigStore) Set(ctx context.Context, key, value string) (time.Time, error) {
	updatedAt := s.now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO config (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, updatedAt.UnixNano())
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to set config %q: %w", key, err)
	}
	return updatedAt, nil
}

// Get returns the value under key and whether it exists.
func (s *ConfigStore) Get(ctx context.Context, key string) (string, time.Time, bool, error) {
	var value string
	var updatedAt int64
	err := s.db.QueryRowContext(ctx, `
		SELECT value, updated_at FROM config WHERE key = ?
	`, key).Scan(&value, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return "", time.Time{}, false, nil
	}
	if err != nil {
		return "", time.Time{}, false, fmt.Errorf("failed to get config %q: %w", key, err)
	}
	return value, time.Unix(0, updatedAt).UTC(), true, nil
}
