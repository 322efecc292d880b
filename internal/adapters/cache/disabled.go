package cache

import (
	"context"

	"go.trai.ch/quack/internal/core/domain"
	"go.trai.ch/quack/internal/core/ports"
)

var _ ports.CacheStore = (*Disabled)(nil)

// Disabled is the no-op store for cache mode "false": every lookup misses and
// every store is discarded.
type Disabled struct{}

// NewDisabled creates the no-op store.
func NewDisabled() *Disabled {
	return &Disabled{}
}

// Lookup always misses.
func (d *Disabled) Lookup(context.Context, domain.CacheKey) (*domain.CacheEntry, error) {
	return nil, nil
}

// Store discards the entry.
func (d *Disabled) Store(context.Context, domain.CacheKey, domain.Metadata, string) error {
	return nil
}
