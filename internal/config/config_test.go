package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	cfg := Load()

	assert.NotNil(t, cfg)
	assert.NotEmpty(t, cfg.ListenAddr)
	assert.NotEmpty(t, cfg.UploadDir)
	assert.NotEmpty(t, cfg.GalleryBackend)
}

func TestLoadCustomValues(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("GALLERY_BACKEND", "cloud")
	t.Setenv("UPLOAD_DIR", "/srv/uploads")
	t.Setenv("STORAGE_BUCKET", "xmas")
	t.Setenv("STORAGE_USE_SSL", "true")

	cfg := Load()

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "/srv/uploads", cfg.UploadDir)
	assert.Equal(t, "xmas", cfg.StorageBucket)
	assert.True(t, cfg.StorageUseSSL)
	assert.True(t, cfg.IsCloud())
}

func TestLoadEmptyValueOverridesDefault(t *testing.T) {
	t.Setenv("LOG_FILE", "")

	cfg := Load()

	assert.Empty(t, cfg.LogFile)
	assert.False(t, cfg.IsCloud())
}
