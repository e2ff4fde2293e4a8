package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vbonduro/photowall/internal/domain"
)

type PhotoStore struct {
	db *sql.DB
}

func NewPhotoStore(db *sql.DB) *PhotoStore {
	return &PhotoStore{db: db}
}

// Create inserts a record. storageKey is where the bytes live in the blob store.
func (s *PhotoStore) Create(ctx context.Context, photo *domain.Photo, storageKey string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO photos (id, filename, storage_key, url, mime_type, size, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, photo.ID, photo.Filename, storageKey, photo.URL, photo.MimeType, photo.Size, photo.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to create photo: %w", err)
	}
	return nil
}

// GetByIdentifier looks a record up by id or filename. It returns nil, "", nil
// when no record matches.
func (s *PhotoStore) GetByIdentifier(ctx context.Context, identifier string) (*domain.Photo, string, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, filename, url, mime_type, size, created_at, storage_key
		FROM photos WHERE id = ? OR filename = ? LIMIT 1
	`, identifier, identifier)

	var storageKey string
	photo, err := scanPhoto(row, &storageKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to get photo: %w", err)
	}
	return photo, storageKey, nil
}

// List returns all records, newest first.
func (s *PhotoStore) List(ctx context.Context) ([]*domain.Photo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, filename, url, mime_type, size, created_at, storage_key
		FROM photos ORDER BY created_at DESC, filename DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	defer func() { _ = rows.Close() }()

	photos := []*domain.Photo{}
	for rows.Next() {
		var storageKey string
		photo, err := scanPhoto(rows, &storageKey)
		if err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		photos = append(photos, photo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate photos: %w", err)
	}
	return photos, nil
}

func (s *PhotoStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM photos WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("photo %q: %w", id, domain.ErrNotFound)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPhoto(sc scanner, storageKey *string) (*domain.Photo, error) {
	photo := &domain.Photo{}
	var createdAt int64
	if err := sc.Scan(&photo.ID, &photo.Filename, &photo.URL, &photo.MimeType, &photo.Size, &createdAt, storageKey); err != nil {
		return nil, err
	}
	photo.CreatedAt = time.Unix(0, createdAt).UTC()
	return photo, nil
}
