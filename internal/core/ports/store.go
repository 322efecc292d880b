package ports

import (
	"context"

	"go.trai.ch/quack/internal/core/domain"
)

// CacheStore is the keyed get/put of (metadata + artifact) under a backend
// policy. A miss is (nil, nil): remote transfer failures are downgraded to
// misses by implementations, never surfaced as lookup errors.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type CacheStore interface {
	// Lookup returns the entry for the key, or nil on a miss. The returned
	// entry's ArchivePath points at a readable local copy of the artifact.
	Lookup(ctx context.Context, key domain.CacheKey) (*domain.CacheEntry, error)

	// Store publishes a new entry from a built archive. Entries are written
	// to a temporary location and atomically published, so a concurrent
	// reader never observes a partial entry.
	Store(ctx context.Context, key domain.CacheKey, meta domain.Metadata, archivePath string) error
}

// StoreSelector resolves the store for a cache mode. Targets can override the
// global policy, so the orchestrator selects a store per target.
type StoreSelector interface {
	ForMode(mode domain.CacheMode) (CacheStore, error)
}
