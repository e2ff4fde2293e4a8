//	@title			Photowall API
//	@version		1.0
//	@description	Shared photo wall: image uploads, listing, deletion and the background music link.
//
//	@host		localhost:8080
//	@BasePath	/

package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vbonduro/photowall/internal/config"
	"github.com/vbonduro/photowall/internal/db"
	"github.com/vbonduro/photowall/internal/gallery"
	"github.com/vbonduro/photowall/internal/gallery/indexed"
	localgallery "github.com/vbonduro/photowall/internal/gallery/local"
	"github.com/vbonduro/photowall/internal/logging"
	"github.com/vbonduro/photowall/internal/musiclink"
	"github.com/vbonduro/photowall/internal/photostore"
	localstore "github.com/vbonduro/photowall/internal/photostore/local"
	"github.com/vbonduro/photowall/internal/photostore/s3"
	"github.com/vbonduro/photowall/internal/store"
	"github.com/vbonduro/photowall/internal/web"

	_ "github.com/vbonduro/photowall/docs/swagger"
)

// cloudKeyPrefix namespaces gallery objects inside the bucket.
const cloudKeyPrefix = "uploads/"

func main() {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	g, blobs, keyPrefix, err := newGallery(ctx, cfg, database, logger)
	if err != nil {
		logger.Error("failed to initialize gallery", "backend", cfg.GalleryBackend, "error", err)
		return
	}

	links := musiclink.NewFallback(
		musiclink.NewSQLStore(store.NewConfigStore(database)),
		musiclink.NewFileCache(cfg.LinkCachePath),
		logger,
	)

	server := web.NewServer(g, links, blobs, keyPrefix, logger)
	if err := server.Run(ctx, cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
		return
	}
	logger.Info("server stopped")
}

// newGallery builds the configured backend. It also returns the blob store
// and key prefix the server uses to stream /uploads/{filename}.
func newGallery(ctx context.Context, cfg *config.Config, database *sql.DB, logger *slog.Logger) (*gallery.Gallery, photostore.PhotoStore, string, error) {
	if cfg.IsCloud() {
		blobs, err := s3.NewMinioPhotoStore(ctx, s3.Options{
			Endpoint:   cfg.StorageEndpoint,
			AccessKey:  cfg.StorageAccessKey,
			SecretKey:  cfg.StorageSecretKey,
			Bucket:     cfg.StorageBucket,
			PublicBase: cfg.StoragePublicBase,
			UseSSL:     cfg.StorageUseSSL,
		}, logger)
		if err != nil {
			return nil, nil, "", err
		}
		logger.Info("using cloud gallery backend", "endpoint", cfg.StorageEndpoint, "bucket", cfg.StorageBucket)
		backend := indexed.NewBackend(blobs, store.NewPhotoStore(database), cloudKeyPrefix, logger)
		return gallery.New(backend, logger), blobs, cloudKeyPrefix, nil
	}

	files, err := localstore.NewLocalPhotoStore(cfg.UploadDir, cfg.UploadURLPrefix)
	if err != nil {
		return nil, nil, "", err
	}
	logger.Info("using local gallery backend", "dir", cfg.UploadDir)
	return gallery.New(localgallery.NewBackend(files), logger), files, "", nil
}
