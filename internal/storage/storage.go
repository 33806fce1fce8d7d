package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/RubachokBoss/lms-service/internal/config"
	"github.com/rs/zerolog"
)

var ErrNotFound = errors.New("file not found")

// Provider persists objects under slash-separated keys such as
// "materials/material_1_1700000000.000001_notes.pdf".
type Provider interface {
	Save(ctx context.Context, key string, content io.Reader, size int64) error
	Open(ctx context.Context, key string) (io.ReadCloser, int64, error)
	// Delete removes the object. A missing object is not an error.
	Delete(ctx context.Context, key string) error
	Name() string
}

func NewProvider(cfg config.StorageConfig, logger zerolog.Logger) (Provider, error) {
	switch cfg.Provider {
	case "", "local":
		return NewLocalProvider(cfg.Local.Root, logger), nil
	case "minio":
		return NewMinIOProvider(
			cfg.MinIO.Endpoint,
			cfg.MinIO.AccessKey,
			cfg.MinIO.SecretKey,
			cfg.BucketName,
			cfg.Region,
			cfg.MinIO.UseSSL,
			logger,
		)
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", cfg.Provider)
	}
}
