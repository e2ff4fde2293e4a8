package gallery

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/photowall/internal/domain"
)

// stubBackend is a minimal in-memory Backend for tests.
type stubBackend struct {
	photos    map[string]*domain.Photo
	data      map[string][]byte
	storeErr  error
	deleteErr error
	stored    int
}

func newStubBackend() *stubBackend {
	return &stubBackend{photos: map[string]*domain.Photo{}, data: map[string][]byte{}}
}

func (s *stubBackend) Store(_ context.Context, filename, mimeType string, _ int64, r io.Reader) (*domain.Photo, error) {
	if s.storeErr != nil {
		return nil, s.storeErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	s.stored++
	p := &domain.Photo{
		ID:        filename,
		Filename:  filename,
		URL:       "/uploads/" + filename,
		MimeType:  mimeType,
		Size:      int64(len(data)),
		CreatedAt: time.Unix(int64(1000+s.stored), 0),
	}
	s.photos[filename] = p
	s.data[filename] = data
	return p, nil
}

func (s *stubBackend) List(_ context.Context) ([]*domain.Photo, error) {
	out := make([]*domain.Photo, 0, len(s.photos))
	for _, p := range s.photos {
		out = append(out, p)
	}
	return out, nil
}

func (s *stubBackend) Delete(_ context.Context, identifier string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	if _, ok := s.photos[identifier]; !ok {
		return fmt.Errorf("photo %q: %w", identifier, domain.ErrNotFound)
	}
	delete(s.photos, identifier)
	delete(s.data, identifier)
	return nil
}

func newTestGallery(backend Backend) *Gallery {
	g := New(backend, slog.Default())
	g.now = func() time.Time { return time.Unix(1766599200, 0) }
	n := 0
	g.suffix = func() string {
		n++
		return fmt.Sprintf("%013x", n)
	}
	return g
}

func TestUploadAcceptsAllowedExtensions(t *testing.T) {
	for _, name := range []string{"cat.jpg", "cat.JPEG", "cat.png", "cat.Gif", "cat.webp", "my.holiday.PNG"} {
		t.Run(name, func(t *testing.T) {
			backend := newStubBackend()
			g := newTestGallery(backend)

			photo, err := g.Upload(context.Background(), name, 4, bytes.NewReader([]byte("data")))
			require.NoError(t, err)

			wantExt := strings.ToLower(name[strings.LastIndex(name, "."):])
			assert.True(t, strings.HasSuffix(photo.Filename, wantExt), photo.Filename)
			assert.Regexp(t, `^1766599200_[0-9a-f]{13}\.[a-z]+$`, photo.Filename)
		})
	}
}

func TestUploadRejectsDisallowedExtensions(t *testing.T) {
	for _, name := range []string{"cat.bmp", "setup.exe", "noext", "", "png", "cat.png.exe"} {
		t.Run(name, func(t *testing.T) {
			backend := newStubBackend()
			g := newTestGallery(backend)

			_, err := g.Upload(context.Background(), name, 4, bytes.NewReader([]byte("data")))
			assert.ErrorIs(t, err, domain.ErrInvalidType)
			assert.Zero(t, backend.stored)
		})
	}
}

func TestUploadRejectsTooLarge(t *testing.T) {
	backend := newStubBackend()
	g := newTestGallery(backend)

	_, err := g.Upload(context.Background(), "big.jpg", MaxUploadSize+1, bytes.NewReader(nil))
	assert.ErrorIs(t, err, domain.ErrTooLarge)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, backend.stored)
}

func TestUploadAcceptsExactlyMaxSize(t *testing.T) {
	backend := newStubBackend()
	g := newTestGallery(backend)

	data := make([]byte, MaxUploadSize)
	photo, err := g.Upload(context.Background(), "edge.png", int64(len(data)), bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, int64(MaxUploadSize), photo.Size)
}

func TestUploadUnderstatedSizeIsRemoved(t *testing.T) {
	backend := newStubBackend()
	g := newTestGallery(backend)

	data := make([]byte, MaxUploadSize+10)
	_, err := g.Upload(context.Background(), "liar.png", 10, bytes.NewReader(data))
	assert.ErrorIs(t, err, domain.ErrTooLarge)
	assert.Empty(t, backend.photos)
}

func TestUploadStorageFailure(t *testing.T) {
	backend := newStubBackend()
	backend.storeErr = errors.New("disk full")
	g := newTestGallery(backend)

	_, err := g.Upload(context.Background(), "cat.png", 4, bytes.NewReader([]byte("data")))
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.False(t, errors.Is(err, domain.ErrValidation))
}

func TestListNewestFirstAndStable(t *testing.T) {
	backend := newStubBackend()
	g := newTestGallery(backend)
	ctx := context.Background()

	for _, name := range []string{"a.png", "b.png", "c.png"} {
		_, err := g.Upload(ctx, name, 1, bytes.NewReader([]byte("x")))
		require.NoError(t, err)
	}

	first, err := g.List(ctx)
	require.NoError(t, err)
	require.Len(t, first, 3)
	assert.True(t, first[0].CreatedAt.After(first[1].CreatedAt))
	assert.True(t, first[1].CreatedAt.After(first[2].CreatedAt))

	second, err := g.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestListTiesBrokenByFilename(t *testing.T) {
	backend := newStubBackend()
	same := time.Unix(5000, 0)
	backend.photos["1_a.png"] = &domain.Photo{Filename: "1_a.png", CreatedAt: same}
	backend.photos["1_b.png"] = &domain.Photo{Filename: "1_b.png", CreatedAt: same}
	g := newTestGallery(backend)

	photos, err := g.List(context.Background())
	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.Equal(t, "1_b.png", photos[0].Filename)
	assert.Equal(t, "1_a.png", photos[1].Filename)
}

func TestListEmptyIsNotNil(t *testing.T) {
	g := newTestGallery(newStubBackend())

	photos, err := g.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, photos)
	assert.Empty(t, photos)
}

func TestDeleteThenRepeatIsNotFound(t *testing.T) {
	backend := newStubBackend()
	g := newTestGallery(backend)
	ctx := context.Background()

	photo, err := g.Upload(ctx, "cat.png", 3, bytes.NewReader([]byte("cat")))
	require.NoError(t, err)

	require.NoError(t, g.Delete(ctx, photo.Filename))

	photos, err := g.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, photos)

	assert.ErrorIs(t, g.Delete(ctx, photo.Filename), domain.ErrNotFound)
}

func TestDeleteRejectsPathSeparators(t *testing.T) {
	backend := newStubBackend()
	backend.deleteErr = errors.New("backend must not be called")
	g := newTestGallery(backend)

	for _, id := range []string{"../etc/passwd", `..\boot.ini`, "a/b.png", `a\b.png`, "..", "."} {
		assert.ErrorIs(t, g.Delete(context.Background(), id), domain.ErrInvalidFilename, id)
	}
	assert.ErrorIs(t, g.Delete(context.Background(), ""), domain.ErrNoFilename)
}

func TestDeleteStorageFailure(t *testing.T) {
	backend := newStubBackend()
	backend.deleteErr = errors.New("permission denied")
	g := newTestGallery(backend)

	err := g.Delete(context.Background(), "x.png")
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestRandomSuffix(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		s := randomSuffix()
		assert.Regexp(t, `^[0-9a-f]{13}$`, s)
		assert.False(t, seen[s])
		seen[s] = true
	}
}
