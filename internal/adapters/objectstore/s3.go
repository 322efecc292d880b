// Package objectstore provides ports.ObjectStore implementations.
package objectstore

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.trai.ch/quack/internal/core/domain"
	"go.trai.ch/quack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ObjectStore = (*S3)(nil)

// S3Config holds the connection settings for an S3-API-compatible service.
type S3Config struct {
	Endpoint        string
	Bucket          string
	AccessKeyID     string
	AccessKeySecret string
	Secure          bool
}

// S3 implements ports.ObjectStore against any S3-API-compatible service.
type S3 struct {
	client *minio.Client
	bucket string
}

// NewS3 creates an S3 object store from the given configuration.
func NewS3(cfg S3Config) (*S3, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.AccessKeySecret, ""),
		Secure: cfg.Secure,
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create object store client"), "endpoint", cfg.Endpoint)
	}
	return &S3{client: client, bucket: cfg.Bucket}, nil
}

// Put uploads size bytes from r under key.
func (s *S3) Put(ctx context.Context, key string, r io.Reader, size int64) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{})
	if err != nil {
		return zerr.With(zerr.Wrap(err, "object upload failed"), "key", key)
	}
	return nil
}

// Get returns a reader for the object at key.
func (s *S3) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	// GetObject defers errors until the first read; stat first so a missing
	// key is reported as such.
	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, zerr.With(domain.ErrObjectNotFound, "key", key)
		}
		return nil, zerr.With(zerr.Wrap(err, "object stat failed"), "key", key)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "object download failed"), "key", key)
	}
	return obj, nil
}

// Exists reports whether an object exists at key.
func (s *S3) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, "object stat failed"), "key", key)
	}
	return true, nil
}
