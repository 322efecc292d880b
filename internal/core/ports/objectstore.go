package ports

import (
	"context"
	"io"
)

// ObjectStore is the capability set the cache needs from a remote object
// storage service. Any S3-API-compatible service can implement it; the core
// never depends on a specific provider's protocol.
//
//go:generate go run go.uber.org/mock/mockgen -source=objectstore.go -destination=mocks/mock_objectstore.go -package=mocks
type ObjectStore interface {
	// Put uploads size bytes from r under key.
	Put(ctx context.Context, key string, r io.Reader, size int64) error

	// Get returns a reader for the object at key, or domain.ErrObjectNotFound.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists reports whether an object exists at key.
	Exists(ctx context.Context, key string) (bool, error)
}
