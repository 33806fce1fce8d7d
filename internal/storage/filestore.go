package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/RubachokBoss/lms-service/internal/models"
	"github.com/rs/zerolog"
)

// Kind selects the directory and file name prefix for an upload.
type Kind struct {
	Dir    string
	Prefix string
	// ExtensionOnly keeps only the extension of the original name.
	ExtensionOnly bool
}

var (
	Material   = Kind{Dir: "materials", Prefix: "material"}
	Assignment = Kind{Dir: "materials", Prefix: "assignment"}
	Submission = Kind{Dir: "submissions", Prefix: "submission"}
	Profile    = Kind{Dir: "profiles", Prefix: "profile", ExtensionOnly: true}
)

// FileStore names uploads and maps the public paths kept in the database
// ("/uploads/<dir>/<name>") onto provider keys.
type FileStore struct {
	provider Provider
	prefix   string
	logger   zerolog.Logger
	now      func() time.Time
}

func NewFileStore(provider Provider, publicPrefix string, logger zerolog.Logger) *FileStore {
	if publicPrefix == "" {
		publicPrefix = "/uploads"
	}
	return &FileStore{
		provider: provider,
		prefix:   "/" + strings.Trim(publicPrefix, "/"),
		logger:   logger,
		now:      time.Now,
	}
}

// Store writes content and returns the public path to persist.
func (s *FileStore) Store(ctx context.Context, kind Kind, originalName string, content io.Reader, size int64, ownerIDs ...int64) (string, error) {
	key := path.Join(kind.Dir, s.fileName(kind, originalName, ownerIDs))

	if err := s.provider.Save(ctx, key, content, size); err != nil {
		return "", fmt.Errorf("failed to store file: %w", err)
	}

	return s.prefix + "/" + key, nil
}

// Replace removes oldPath, if any, and stores the new content.
func (s *FileStore) Replace(ctx context.Context, oldPath string, kind Kind, originalName string, content io.Reader, size int64, ownerIDs ...int64) (string, error) {
	if err := s.Delete(ctx, oldPath); err != nil {
		return "", err
	}
	return s.Store(ctx, kind, originalName, content, size, ownerIDs...)
}

// Delete removes the file behind a public path. Empty paths, paths outside
// the upload namespace and missing files are ignored.
func (s *FileStore) Delete(ctx context.Context, publicPath string) error {
	key, ok := s.keyFor(publicPath)
	if !ok {
		return nil
	}

	if err := s.provider.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", publicPath, err)
	}

	s.logger.Debug().Str("path", publicPath).Msg("Stored file removed")
	return nil
}

// Open returns the stored content for a public path. ErrNotFound is returned
// for missing files and for paths outside the upload namespace.
func (s *FileStore) Open(ctx context.Context, publicPath string) (io.ReadCloser, int64, error) {
	key, ok := s.keyFor(publicPath)
	if !ok {
		return nil, 0, ErrNotFound
	}
	return s.provider.Open(ctx, key)
}

// Classify derives the material type of an uploaded file name.
func (s *FileStore) Classify(originalName string) models.FileType {
	return models.ClassifyFile(originalName)
}

func (s *FileStore) fileName(kind Kind, originalName string, ownerIDs []int64) string {
	parts := make([]string, 0, len(ownerIDs)+3)
	parts = append(parts, kind.Prefix)
	for _, id := range ownerIDs {
		parts = append(parts, strconv.FormatInt(id, 10))
	}

	now := s.now()
	ts := fmt.Sprintf("%d.%06d", now.Unix(), now.Nanosecond()/int(time.Microsecond))

	base := filepath.Base(strings.ReplaceAll(originalName, "\\", "/"))
	if base == "." || base == "/" {
		base = ""
	}

	if kind.ExtensionOnly {
		parts = append(parts, ts)
		return strings.Join(parts, "_") + filepath.Ext(base)
	}

	parts = append(parts, ts, base)
	return strings.Join(parts, "_")
}

func (s *FileStore) keyFor(publicPath string) (string, bool) {
	if !strings.HasPrefix(publicPath, s.prefix+"/") {
		return "", false
	}
	key := strings.TrimPrefix(path.Clean(strings.TrimPrefix(publicPath, s.prefix)), "/")
	if key == "" || key == "." {
		return "", false
	}
	return key, true
}
