// Package bootstrap provides dependency initialization for the toolkit.
package bootstrap

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/anthonynsimon/bild/transform"

	"github.com/maauso/framekit/internal/config"
	"github.com/maauso/framekit/internal/media"
	"github.com/maauso/framekit/internal/storage"
)

// Dependencies holds everything a toolkit needs, built from one Config.
type Dependencies struct {
	Codec      *media.Codec
	Video      media.VideoDecoder
	Store      storage.Storage
	Filter     transform.ResampleFilter
	Background color.RGBA
}

// NewDependencies validates cfg and creates all dependencies.
func NewDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	filter, err := media.ParseFilter(cfg.ResizeFilter)
	if err != nil {
		return nil, fmt.Errorf("resize filter: %w", err)
	}

	background, err := media.ParseHexColor(cfg.BackgroundColor)
	if err != nil {
		return nil, fmt.Errorf("background color: %w", err)
	}

	store, err := initStorage(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Dependencies{
		Codec:      media.NewCodec(cfg.JPEGQuality),
		Video:      media.NewFFmpegProcessor(cfg.FFmpegPath, cfg.FFprobePath),
		Store:      store,
		Filter:     filter,
		Background: background,
	}, nil
}

// initStorage creates the appropriate storage backend based on configuration.
func initStorage(cfg *config.Config, logger *slog.Logger) (storage.Storage, error) {
	if cfg.S3Enabled() {
		s3Cfg := storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		}
		s3Store, err := storage.NewS3Storage(cfg.TempDir, s3Cfg)
		if err != nil {
			return nil, fmt.Errorf("create S3 storage: %w", err)
		}
		logger.Debug("S3 storage configured",
			slog.String("bucket", cfg.S3Bucket),
			slog.String("region", cfg.S3Region),
		)
		return s3Store, nil
	}

	localStore, err := storage.NewLocalStorage(cfg.TempDir)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}
	logger.Debug("local storage configured",
		slog.String("temp_dir", cfg.TempDir),
	)
	return localStore, nil
}
