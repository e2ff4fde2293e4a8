package musiclink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vbonduro/photowall/internal/domain"
)

// FileCache keeps the last saved link in a small JSON file next to the
// server, standing in for the browser's local storage.
type FileCache struct {
	path string
	now  func() time.Time
}

type cachedLink struct {
	Link      string    `json:"link"`
	Timestamp time.Time `json:"timestamp"`
}

func NewFileCache(path string) *FileCache {
	return &FileCache{path: path, now: time.Now}
}

func (c *FileCache) Save(ctx context.Context, link string) error {
	data, err := json.Marshal(cachedLink{Link: link, Timestamp: c.now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to encode cached link: %w", err)
	}

	dir := filepath.Dir(c.path)
	f, err := os.CreateTemp(dir, ".musiclink-*")
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	tmpPath := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close cache file: %w", err)
	}
	if err := os.Rename(tmpPath, c.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace cache file: %w", err)
	}
	return nil
}

func (c *FileCache) Load(ctx context.Context) (domain.MusicLink, bool, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.MusicLink{}, false, nil
		}
		return domain.MusicLink{}, false, fmt.Errorf("failed to read cache file: %w", err)
	}

	var cached cachedLink
	if err := json.Unmarshal(data, &cached); err != nil {
		return domain.MusicLink{}, false, fmt.Errorf("failed to decode cache file: %w", err)
	}
	if cached.Link == "" {
		return domain.MusicLink{}, false, nil
	}
	return domain.MusicLink{Link: cached.Link, UpdatedAt: cached.Timestamp}, true, nil
}
