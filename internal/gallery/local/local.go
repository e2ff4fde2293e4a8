// Package local is the gallery backend where the uploads directory is its
// own index: a photo exists exactly when its file does.
package local

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/vbonduro/photowall/internal/domain"
	"github.com/vbonduro/photowall/internal/photostore"
	localstore "github.com/vbonduro/photowall/internal/photostore/local"
)

type Backend struct {
	files *localstore.LocalPhotoStore
}

func NewBackend(files *localstore.LocalPhotoStore) *Backend {
	return &Backend{files: files}
}

func (b *Backend) Store(ctx context.Context, filename, mimeType string, size int64, r io.Reader) (*domain.Photo, error) {
	if err := b.files.Save(ctx, filename, mimeType, size, r); err != nil {
		return nil, fmt.Errorf("failed to save photo: %w", err)
	}
	obj, err := b.files.Stat(ctx, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to stat saved photo: %w", err)
	}
	return b.toPhoto(obj), nil
}

func (b *Backend) List(ctx context.Context) ([]*domain.Photo, error) {
	objects, err := b.files.List(ctx)
	if err != nil {
		return nil, err
	}
	photos := make([]*domain.Photo, 0, len(objects))
	for _, obj := range objects {
		photos = append(photos, b.toPhoto(obj))
	}
	return photos, nil
}

// Delete accepts a filename or a filename stem (the record id).
func (b *Backend) Delete(ctx context.Context, identifier string) error {
	filename, err := b.resolve(ctx, identifier)
	if err != nil {
		return err
	}
	return b.files.Delete(ctx, filename)
}

func (b *Backend) resolve(ctx context.Context, identifier string) (string, error) {
	if strings.HasPrefix(identifier, ".") {
		return "", fmt.Errorf("photo %q: %w", identifier, domain.ErrNotFound)
	}
	if filepath.Ext(identifier) != "" {
		return identifier, nil
	}
	objects, err := b.files.List(ctx)
	if err != nil {
		return "", err
	}
	for _, obj := range objects {
		if stem(obj.Key) == identifier {
			return obj.Key, nil
		}
	}
	return "", fmt.Errorf("photo %q: %w", identifier, domain.ErrNotFound)
}

func (b *Backend) toPhoto(obj localstore.Object) *domain.Photo {
	return &domain.Photo{
		ID:        stem(obj.Key),
		Filename:  obj.Key,
		URL:       b.files.URL(obj.Key),
		MimeType:  photostore.MimeTypeForExt(obj.Key),
		Size:      obj.Size,
		CreatedAt: obj.ModTime,
	}
}

func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
