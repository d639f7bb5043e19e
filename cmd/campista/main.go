package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/vbonduro/campista/internal/auth"
	"github.com/vbonduro/campista/internal/config"
	"github.com/vbonduro/campista/internal/db"
	"github.com/vbonduro/campista/internal/geocode"
	"github.com/vbonduro/campista/internal/geocode/mapbox"
	"github.com/vbonduro/campista/internal/geocode/nominatim"
	"github.com/vbonduro/campista/internal/logging"
	"github.com/vbonduro/campista/internal/photostore"
	localphotos "github.com/vbonduro/campista/internal/photostore/local"
	s3photos "github.com/vbonduro/campista/internal/photostore/s3"
	"github.com/vbonduro/campista/internal/service"
	"github.com/vbonduro/campista/internal/store"
	"github.com/vbonduro/campista/internal/viewcache"
	"github.com/vbonduro/campista/internal/web"
)

func main() {
	// Optional .env for local development.
	_ = godotenv.Load()

	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	if cfg.SessionSecret == "" {
		logger.Error("SESSION_SECRET is required")
		return
	}

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

	views, err := viewcache.New(cfg.ViewCacheSize)
	if err != nil {
		logger.Error("failed to create view cache", "error", err)
		return
	}

	blobs, localBlobs, err := newBlobStore(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize photo storage", "error", err)
		return
	}

	userStore := store.NewUserStore(database)
	tokenStore := store.NewTokenStore(database)
	campsiteStore := store.NewCampsiteStore(database)
	photoStore := store.NewPhotoStore(database)

	authSvc := auth.NewService(userStore, tokenStore, logger)
	sessions := auth.NewSessions(cfg.SessionSecret, cfg.SecureCookies)
	campsiteSvc := service.NewCampsiteService(campsiteStore, photoStore, views, logger)
	photoSvc := service.NewPhotoService(photoStore, campsiteStore, blobs, views, logger)

	server := web.NewServer(campsiteSvc, photoSvc, authSvc, sessions,
		newGeocoder(cfg, logger), views, localBlobs, logger)

	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}

func newBlobStore(cfg *config.Config, logger *slog.Logger) (photostore.BlobStore, *localphotos.Store, error) {
	switch cfg.PhotoBackend {
	case "s3":
		logger.Info("using s3 photo backend", "bucket", cfg.S3Bucket)
		s, err := s3photos.New(context.Background(), s3photos.Options{
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		})
		return s, nil, err
	default:
		logger.Info("using local photo backend", "path", cfg.PhotoPath)
		s, err := localphotos.New(cfg.PhotoPath, cfg.PublicBaseURL, cfg.PhotoSigningSecret, cfg.PhotoBucket)
		return s, s, err
	}
}

func newGeocoder(cfg *config.Config, logger *slog.Logger) geocode.Geocoder {
	switch cfg.GeocodeBackend {
	case "mapbox":
		logger.Info("using mapbox geocoding backend")
		return mapbox.New(cfg.MapboxToken)
	default:
		logger.Info("using nominatim geocoding backend")
		if cfg.NominatimHost != "" {
			return nominatim.NewWithHost(cfg.NominatimHost, "campista")
		}
		return nominatim.New("campista")
	}
}
