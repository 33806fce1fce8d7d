package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

type LocalProvider struct {
	root   string
	logger zerolog.Logger
}

func NewLocalProvider(root string, logger zerolog.Logger) *LocalProvider {
	if root == "" {
		root = "uploads"
	}
	return &LocalProvider{
		root:   root,
		logger: logger,
	}
}

func (p *LocalProvider) Name() string {
	return "local"
}

func (p *LocalProvider) Save(ctx context.Context, key string, content io.Reader, size int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fullPath := p.resolve(key)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	written, err := io.Copy(f, content)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(fullPath)
		return fmt.Errorf("failed to write file: %w", err)
	}

	p.logger.Debug().
		Str("file", fullPath).
		Int64("size", written).
		Msg("File written")

	return nil
}

func (p *LocalProvider) Open(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	f, err := os.Open(p.resolve(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		f.Close()
		return nil, 0, ErrNotFound
	}

	return f, info.Size(), nil
}

func (p *LocalProvider) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(p.resolve(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (p *LocalProvider) resolve(key string) string {
	return filepath.Join(p.root, filepath.FromSlash(key))
}
