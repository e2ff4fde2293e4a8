package local_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/photowall/internal/domain"
	"github.com/vbonduro/photowall/internal/gallery"
	"github.com/vbonduro/photowall/internal/gallery/local"
	localstore "github.com/vbonduro/photowall/internal/photostore/local"
)

func newTestGallery(t *testing.T) (*gallery.Gallery, *localstore.LocalPhotoStore, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "uploads")
	files, err := localstore.NewLocalPhotoStore(dir, "/uploads")
	require.NoError(t, err)
	return gallery.New(local.NewBackend(files), slog.Default()), files, dir
}

func TestUploadListGetRoundTrip(t *testing.T) {
	g, files, _ := newTestGallery(t)
	ctx := context.Background()
	data := bytes.Repeat([]byte{0x89, 'P', 'N', 'G'}, 512) // 2 KiB

	photo, err := g.Upload(ctx, "cat.png", int64(len(data)), bytes.NewReader(data))
	require.NoError(t, err)
	assert.Regexp(t, `^\d+_[0-9a-f]{13}\.png$`, photo.Filename)
	assert.Equal(t, "/uploads/"+photo.Filename, photo.URL)
	assert.Equal(t, strings.TrimSuffix(photo.Filename, ".png"), photo.ID)
	assert.Equal(t, int64(len(data)), photo.Size)

	photos, err := g.List(ctx)
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, photo.Filename, photos[0].Filename)

	rc, mimeType, err := files.Get(ctx, strings.TrimPrefix(photos[0].URL, "/uploads/"))
	require.NoError(t, err)
	defer rc.Close()
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.Equal(t, "image/png", mimeType)

	require.NoError(t, g.Delete(ctx, photo.Filename))

	photos, err = g.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, photos)
}

func TestRejectedUploadWritesNothing(t *testing.T) {
	g, _, dir := newTestGallery(t)
	ctx := context.Background()

	_, err := g.Upload(ctx, "virus.exe", 10, bytes.NewReader(make([]byte, 10)))
	assert.ErrorIs(t, err, domain.ErrValidation)

	big := make([]byte, 6*1024*1024)
	_, err = g.Upload(ctx, "big.jpg", int64(len(big)), bytes.NewReader(big))
	assert.ErrorIs(t, err, domain.ErrTooLarge)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListOrderedByModTime(t *testing.T) {
	g, _, dir := newTestGallery(t)
	ctx := context.Background()

	older, err := g.Upload(ctx, "a.jpg", 1, bytes.NewReader([]byte("a")))
	require.NoError(t, err)
	newer, err := g.Upload(ctx, "b.jpg", 1, bytes.NewReader([]byte("b")))
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, older.Filename), past, past))

	photos, err := g.List(ctx)
	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.Equal(t, newer.Filename, photos[0].Filename)
	assert.Equal(t, older.Filename, photos[1].Filename)
}

func TestListPicksUpFilesDroppedIntoDirectory(t *testing.T) {
	g, _, dir := newTestGallery(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manual.gif"), []byte("GIF89a"), 0644))

	photos, err := g.List(context.Background())
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, "manual.gif", photos[0].Filename)
	assert.Equal(t, "image/gif", photos[0].MimeType)
}

func TestDeleteByID(t *testing.T) {
	g, _, _ := newTestGallery(t)
	ctx := context.Background()

	photo, err := g.Upload(ctx, "c.webp", 1, bytes.NewReader([]byte("w")))
	require.NoError(t, err)

	require.NoError(t, g.Delete(ctx, photo.ID))
	assert.ErrorIs(t, g.Delete(ctx, photo.ID), domain.ErrNotFound)
	assert.ErrorIs(t, g.Delete(ctx, photo.Filename), domain.ErrNotFound)
}

func TestDeleteTraversalLeavesStorageUntouched(t *testing.T) {
	g, _, dir := newTestGallery(t)
	ctx := context.Background()

	outside := filepath.Join(filepath.Dir(dir), "secret.png")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0644))

	err := g.Delete(ctx, "../secret.png")
	assert.ErrorIs(t, err, domain.ErrInvalidFilename)

	_, err = os.Stat(outside)
	assert.NoError(t, err)
}

func TestDeleteInFlightUploadIsNotFound(t *testing.T) {
	g, _, dir := newTestGallery(t)
	ctx := context.Background()

	inflight := filepath.Join(dir, ".upload-inflight")
	require.NoError(t, os.WriteFile(inflight, []byte("partial"), 0644))
	dotted := filepath.Join(dir, ".hidden.png")
	require.NoError(t, os.WriteFile(dotted, []byte("png"), 0644))

	photos, err := g.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, photos)

	assert.ErrorIs(t, g.Delete(ctx, ".upload-inflight"), domain.ErrNotFound)
	assert.ErrorIs(t, g.Delete(ctx, ".hidden.png"), domain.ErrNotFound)

	_, err = os.Stat(inflight)
	assert.NoError(t, err)
	_, err = os.Stat(dotted)
	assert.NoError(t, err)
}
