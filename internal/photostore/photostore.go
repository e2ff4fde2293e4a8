package photostore

import (
	"context"
	"io"
	"path/filepath"
	"strings"
)

// PhotoStore holds image bytes under caller-chosen keys.
type PhotoStore interface {
	// Save writes exactly the bytes of r under key. size may be -1 if unknown.
	Save(ctx context.Context, key, mimeType string, size int64, r io.Reader) error
	// Get returns the stored bytes and their MIME type. A missing key yields
	// an error matching domain.ErrNotFound.
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
	// Delete removes key. A missing key yields domain.ErrNotFound.
	Delete(ctx context.Context, key string) error
	// URL returns the address clients use to fetch key.
	URL(key string) string
}

// MimeTypeForExt maps an image filename extension to its MIME type.
func MimeTypeForExt(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
