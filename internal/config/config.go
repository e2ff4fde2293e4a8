package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

const (
	BackendLocal = "local"
	BackendCloud = "cloud"
)

type Config struct {
	ListenAddr      string
	GalleryBackend  string
	UploadDir       string
	UploadURLPrefix string
	DBPath          string
	LinkCachePath   string
	LogLevel        string
	LogFile         string

	// S3-compatible object storage, used when GalleryBackend is "cloud".
	StorageEndpoint   string
	StorageAccessKey  string
	StorageSecretKey  string
	StorageBucket     string
	StorageUseSSL     bool
	StoragePublicBase string
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, reading from environment")
	}

	return &Config{
		ListenAddr:      getEnv("LISTEN_ADDR", ":8080"),
		GalleryBackend:  getEnv("GALLERY_BACKEND", BackendLocal),
		UploadDir:       getEnv("UPLOAD_DIR", "uploads"),
		UploadURLPrefix: getEnv("UPLOAD_URL_PREFIX", "/uploads"),
		DBPath:          getEnv("DB_PATH", "photowall.db"),
		LinkCachePath:   getEnv("LINK_CACHE_PATH", "music_link.json"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFile:         getEnv("LOG_FILE", ""),

		StorageEndpoint:   getEnv("STORAGE_ENDPOINT", "localhost:9000"),
		StorageAccessKey:  getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
		StorageSecretKey:  getEnv("STORAGE_SECRET_KEY", "minioadmin"),
		StorageBucket:     getEnv("STORAGE_BUCKET", "photos"),
		StorageUseSSL:     getEnv("STORAGE_USE_SSL", "false") == "true",
		StoragePublicBase: getEnv("STORAGE_PUBLIC_BASE", "http://localhost:9000/photos"),
	}
}

// IsCloud reports whether photos go to object storage with a metadata index.
func (c *Config) IsCloud() bool {
	return c.GalleryBackend == BackendCloud
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}
