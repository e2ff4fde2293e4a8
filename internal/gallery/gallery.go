// Package gallery validates photo uploads and deletes, names stored files and
// delegates persistence to a Backend.
package gallery

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/vbonduro/photowall/internal/domain"
	"github.com/vbonduro/photowall/internal/logging"
	"github.com/vbonduro/photowall/internal/photostore"
)

// MaxUploadSize is the largest accepted image in bytes.
const MaxUploadSize = 5 * 1024 * 1024

var allowedExts = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"webp": true,
}

// Backend persists photo bytes and the records describing them.
type Backend interface {
	// Store writes the bytes of r under filename and returns the new record.
	Store(ctx context.Context, filename, mimeType string, size int64, r io.Reader) (*domain.Photo, error)
	// List returns every known record in no particular order.
	List(ctx context.Context) ([]*domain.Photo, error)
	// Delete removes the bytes and the record for identifier, or returns
	// domain.ErrNotFound.
	Delete(ctx context.Context, identifier string) error
}

type Gallery struct {
	backend Backend
	logger  *slog.Logger
	now     func() time.Time
	suffix  func() string
}

func New(backend Backend, logger *slog.Logger) *Gallery {
	return &Gallery{
		backend: backend,
		logger:  logger,
		now:     time.Now,
		suffix:  randomSuffix,
	}
}

// Upload validates originalName and size, then stores the image under a
// freshly generated filename that keeps the lower-cased extension.
func (g *Gallery) Upload(ctx context.Context, originalName string, size int64, r io.Reader) (*domain.Photo, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filepath.Base(originalName)), "."))
	if !allowedExts[ext] {
		return nil, domain.ErrInvalidType
	}
	if size > MaxUploadSize {
		return nil, domain.ErrTooLarge
	}

	logger := logging.FromContext(ctx, g.logger)

	// A reader longer than the declared size must not slip past the limit.
	body := io.LimitReader(r, MaxUploadSize+1)
	counted := &countingReader{r: body}

	filename := fmt.Sprintf("%d_%s.%s", g.now().Unix(), g.suffix(), ext)
	photo, err := g.backend.Store(ctx, filename, photostore.MimeTypeForExt(filename), size, counted)
	if err != nil {
		return nil, &domain.StorageError{Op: "save", Err: err}
	}
	if counted.n > MaxUploadSize {
		logger.Warn("upload exceeded declared size, removing", "filename", filename, "declared", size)
		if derr := g.backend.Delete(ctx, photo.Filename); derr != nil {
			logger.Error("failed to remove oversized upload", "filename", filename, "error", derr)
		}
		return nil, domain.ErrTooLarge
	}

	logger.Info("photo uploaded",
		"filename", photo.Filename,
		"original", originalName,
		"size", humanize.IBytes(uint64(counted.n)),
	)
	return photo, nil
}

// List returns all records sorted by creation time, most recent first.
func (g *Gallery) List(ctx context.Context) ([]*domain.Photo, error) {
	photos, err := g.backend.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	if photos == nil {
		photos = []*domain.Photo{}
	}
	sort.SliceStable(photos, func(i, j int) bool {
		if !photos[i].CreatedAt.Equal(photos[j].CreatedAt) {
			return photos[i].CreatedAt.After(photos[j].CreatedAt)
		}
		return photos[i].Filename > photos[j].Filename
	})
	return photos, nil
}

// Delete removes the photo named by identifier (a filename or record id).
func (g *Gallery) Delete(ctx context.Context, identifier string) error {
	if err := ValidateIdentifier(identifier); err != nil {
		return err
	}

	if err := g.backend.Delete(ctx, identifier); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return &domain.StorageError{Op: "delete", Err: err}
	}

	logging.FromContext(ctx, g.logger).Info("photo deleted", "identifier", identifier)
	return nil
}

// ValidateIdentifier rejects empty identifiers and anything that could
// address a path outside the storage root.
func ValidateIdentifier(identifier string) error {
	if identifier == "" {
		return domain.ErrNoFilename
	}
	if strings.ContainsAny(identifier, `/\`) || identifier == "." || identifier == ".." || strings.ContainsRune(identifier, 0) {
		return domain.ErrInvalidFilename
	}
	return nil
}

// randomSuffix returns 13 hex characters taken from the random tail of a
// v4 UUID (bytes 9-15 carry no version or variant bits).
func randomSuffix() string {
	id := uuid.New()
	return hex.EncodeToString(id[9:])[:13]
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
