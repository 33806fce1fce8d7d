package service

import (
	"context"
	"io"

	"github.com/RubachokBoss/lms-service/internal/models"
	"github.com/RubachokBoss/lms-service/internal/storage"
	"github.com/rs/zerolog"
)

// FileStore is the part of storage.FileStore the services use.
type FileStore interface {
	Store(ctx context.Context, kind storage.Kind, originalName string, content io.Reader, size int64, ownerIDs ...int64) (string, error)
	Replace(ctx context.Context, oldPath string, kind storage.Kind, originalName string, content io.Reader, size int64, ownerIDs ...int64) (string, error)
	Delete(ctx context.Context, publicPath string) error
	Classify(originalName string) models.FileType
}

// discardFile removes a stored file on a best-effort basis.
func discardFile(ctx context.Context, files FileStore, path string, logger zerolog.Logger) {
	if path == "" {
		return
	}
	if err := files.Delete(ctx, path); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Failed to remove stored file")
	}
}

func stringPtr(s string) *string {
	return &s
}
