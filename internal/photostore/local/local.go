package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/vbonduro/photowall/internal/domain"
	"github.com/vbonduro/photowall/internal/photostore"
)

// tempPrefix marks in-flight writes; List never reports them.
const tempPrefix = ".upload-"

type LocalPhotoStore struct {
	basePath  string
	urlPrefix string
}

// Object describes one file found by List.
type Object struct {
	Key     string
	Size    int64
	ModTime time.Time
}

func NewLocalPhotoStore(basePath, urlPrefix string) (*LocalPhotoStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create photo directory: %w", err)
	}
	return &LocalPhotoStore{basePath: basePath, urlPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

// Save writes into a temp file in the target directory and renames it into
// place, so a failed write never leaves a visible partial file.
func (s *LocalPhotoStore) Save(ctx context.Context, key, mimeType string, size int64, r io.Reader) error {
	filePath, err := s.safeJoin(key)
	if err != nil {
		return err
	}
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.CreateTemp(dir, tempPrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	tmpPath := f.Name()

	if _, err := io.Copy(f, r); err != nil {
		if cerr := f.Close(); cerr != nil {
			slog.Error("failed to close file after write error", "error", cerr)
		}
		if rerr := os.Remove(tmpPath); rerr != nil {
			slog.Error("failed to remove file after write error", "error", rerr)
		}
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		if rerr := os.Remove(tmpPath); rerr != nil {
			slog.Error("failed to remove file after close error", "error", rerr)
		}
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		slog.Warn("failed to chmod uploaded file", "key", key, "error", err)
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		if rerr := os.Remove(tmpPath); rerr != nil {
			slog.Error("failed to remove file after rename error", "error", rerr)
		}
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	return nil
}

func (s *LocalPhotoStore) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	filePath, err := s.safeJoin(key)
	if err != nil {
		return nil, "", err
	}

	if hidden(key) {
		return nil, "", fmt.Errorf("photo %q: %w", key, domain.ErrNotFound)
	}

	f, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("photo %q: %w", key, domain.ErrNotFound)
		}
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		_ = f.Close()
		return nil, "", fmt.Errorf("photo %q: %w", key, domain.ErrNotFound)
	}
	return f, photostore.MimeTypeForExt(filePath), nil
}

func (s *LocalPhotoStore) Delete(ctx context.Context, key string) error {
	filePath, err := s.safeJoin(key)
	if err != nil {
		return err
	}

	if _, err := s.Stat(ctx, key); err != nil {
		return err
	}

	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("photo %q: %w", key, domain.ErrNotFound)
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *LocalPhotoStore) URL(key string) string {
	return s.urlPrefix + "/" + path.Clean(filepath.ToSlash(key))
}

// Stat describes the file stored under key.
func (s *LocalPhotoStore) Stat(ctx context.Context, key string) (Object, error) {
	filePath, err := s.safeJoin(key)
	if err != nil {
		return Object{}, err
	}
	if hidden(key) {
		return Object{}, fmt.Errorf("photo %q: %w", key, domain.ErrNotFound)
	}
	info, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return Object{}, fmt.Errorf("photo %q: %w", key, domain.ErrNotFound)
		}
		return Object{}, fmt.Errorf("failed to stat file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return Object{}, fmt.Errorf("photo %q: %w", key, domain.ErrNotFound)
	}
	return Object{Key: key, Size: info.Size(), ModTime: info.ModTime()}, nil
}

// List returns every regular file directly inside the base directory.
func (s *LocalPhotoStore) List(ctx context.Context) ([]Object, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Object{}, nil
		}
		return nil, fmt.Errorf("failed to read photo directory: %w", err)
	}

	objects := make([]Object, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if hidden(name) || !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}
		objects = append(objects, Object{Key: name, Size: info.Size(), ModTime: info.ModTime()})
	}
	return objects, nil
}

// hidden reports whether key names a dotfile, such as an in-flight upload.
// Those are never part of the gallery.
func hidden(key string) bool {
	return strings.HasPrefix(filepath.Base(key), ".")
}

// safeJoin resolves key relative to basePath and rejects directory traversal.
func (s *LocalPhotoStore) safeJoin(key string) (string, error) {
	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}

	absPath, err := filepath.Abs(filepath.Join(s.basePath, key))
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", domain.ErrInvalidFilename
	}
	return absPath, nil
}
