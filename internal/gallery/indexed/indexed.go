// Package indexed is the gallery backend that keeps photo bytes in a blob
// store and their records in a metadata repository. The two writes are not
// atomic: a failure between them can leave the stores out of sync.
package indexed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vbonduro/photowall/internal/domain"
	"github.com/vbonduro/photowall/internal/photostore"
)

// recordRepository is the subset of store.PhotoStore that Backend requires.
type recordRepository interface {
	Create(ctx context.Context, photo *domain.Photo, storageKey string) error
	GetByIdentifier(ctx context.Context, identifier string) (*domain.Photo, string, error)
	List(ctx context.Context) ([]*domain.Photo, error)
	Delete(ctx context.Context, id string) error
}

type Backend struct {
	blobs     photostore.PhotoStore
	records   recordRepository
	keyPrefix string
	logger    *slog.Logger
	now       func() time.Time
}

// NewBackend stores each photo under keyPrefix+filename in blobs,
// e.g. "uploads/".
func NewBackend(blobs photostore.PhotoStore, records recordRepository, keyPrefix string, logger *slog.Logger) *Backend {
	return &Backend{
		blobs:     blobs,
		records:   records,
		keyPrefix: keyPrefix,
		logger:    logger,
		now:       time.Now,
	}
}

func (b *Backend) Store(ctx context.Context, filename, mimeType string, size int64, r io.Reader) (*domain.Photo, error) {
	key := b.keyPrefix + filename
	counted := &countingReader{r: r}

	if err := b.blobs.Save(ctx, key, mimeType, size, counted); err != nil {
		return nil, fmt.Errorf("failed to save photo bytes: %w", err)
	}
	b.logger.Debug("photo bytes saved", "storage_key", key)

	photo := &domain.Photo{
		ID:        uuid.NewString(),
		Filename:  filename,
		URL:       b.blobs.URL(key),
		MimeType:  mimeType,
		Size:      counted.n,
		CreatedAt: b.now().UTC(),
	}
	if err := b.records.Create(ctx, photo, key); err != nil {
		// Best effort only; if this also fails the blob is orphaned.
		if derr := b.blobs.Delete(ctx, key); derr != nil {
			b.logger.Error("orphaned photo bytes after record failure", "storage_key", key, "error", derr)
		}
		return nil, fmt.Errorf("failed to create photo record: %w", err)
	}
	return photo, nil
}

func (b *Backend) List(ctx context.Context) ([]*domain.Photo, error) {
	return b.records.List(ctx)
}

// Delete removes the bytes first, then the record. A missing blob is logged
// and the record is still removed so the gallery stops listing it.
func (b *Backend) Delete(ctx context.Context, identifier string) error {
	photo, key, err := b.records.GetByIdentifier(ctx, identifier)
	if err != nil {
		return err
	}
	if photo == nil {
		return fmt.Errorf("photo %q: %w", identifier, domain.ErrNotFound)
	}

	if err := b.blobs.Delete(ctx, key); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("failed to delete photo bytes: %w", err)
		}
		b.logger.Warn("photo bytes already missing", "id", photo.ID, "storage_key", key)
	}

	if err := b.records.Delete(ctx, photo.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// A concurrent delete won the race.
			return err
		}
		b.logger.Error("photo record left without bytes", "id", photo.ID, "storage_key", key, "error", err)
		return fmt.Errorf("failed to delete photo record: %w", err)
	}
	return nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
