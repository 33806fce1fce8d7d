package storage

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
)

type MinIOProvider struct {
	client *minio.Client
	bucket string
	region string
	logger zerolog.Logger

	ensureMu      sync.Mutex
	bucketEnsured bool
}

// NewMinIOProvider does not contact the server. The bucket is created on
// first use, so the service can start before MinIO is ready.
func NewMinIOProvider(endpoint, accessKey, secretKey, bucket, region string, useSSL bool, logger zerolog.Logger) (*MinIOProvider, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	logger.Info().
		Str("endpoint", endpoint).
		Str("bucket", bucket).
		Bool("ssl", useSSL).
		Msg("MinIO storage configured")

	return &MinIOProvider{
		client: client,
		bucket: bucket,
		region: region,
		logger: logger,
	}, nil
}

func (p *MinIOProvider) Name() string {
	return "minio"
}

// ensureBucket retries until the bucket exists or ctx is done.
func (p *MinIOProvider) ensureBucket(ctx context.Context) error {
	p.ensureMu.Lock()
	defer p.ensureMu.Unlock()
	if p.bucketEnsured {
		return nil
	}

	backoff := 500 * time.Millisecond
	for {
		exists, err := p.client.BucketExists(ctx, p.bucket)
		if err == nil && !exists {
			err = p.client.MakeBucket(ctx, p.bucket, minio.MakeBucketOptions{Region: p.region})
			if err == nil {
				p.logger.Info().Str("bucket", p.bucket).Msg("Created new bucket")
			}
		}
		if err == nil {
			p.bucketEnsured = true
			return nil
		}

		p.logger.Warn().Err(err).Str("bucket", p.bucket).Msg("MinIO not ready, retrying")

		select {
		case <-ctx.Done():
			return fmt.Errorf("minio not ready: %w", err)
		case <-time.After(backoff):
		}
		if backoff < 4*time.Second {
			backoff *= 2
		}
	}
}

func (p *MinIOProvider) Save(ctx context.Context, key string, content io.Reader, size int64) error {
	if err := p.ensureBucket(ctx); err != nil {
		return err
	}

	info, err := p.client.PutObject(ctx, p.bucket, key, content, size, minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}

	p.logger.Debug().
		Str("bucket", p.bucket).
		Str("file", key).
		Str("etag", info.ETag).
		Int64("size", info.Size).
		Msg("File uploaded to MinIO")

	return nil
}

func (p *MinIOProvider) Open(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	if err := p.ensureBucket(ctx); err != nil {
		return nil, 0, err
	}

	objInfo, err := p.client.StatObject(ctx, p.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("failed to stat file: %w", err)
	}

	object, err := p.client.GetObject(ctx, p.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get file: %w", err)
	}

	return object, objInfo.Size, nil
}

func (p *MinIOProvider) Delete(ctx context.Context, key string) error {
	if err := p.ensureBucket(ctx); err != nil {
		return err
	}

	err := p.client.RemoveObject(ctx, p.bucket, key, minio.RemoveObjectOptions{})
	if err != nil && minio.ToErrorResponse(err).Code != "NoSuchKey" {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	p.logger.Debug().
		Str("bucket", p.bucket).
		Str("file", key).
		Msg("File deleted from MinIO")

	return nil
}
