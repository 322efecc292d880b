package cache

import (
	"context"

	"go.trai.ch/quack/internal/core/domain"
	"go.trai.ch/quack/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

var _ ports.CacheStore = (*Dev)(nil)

// Dev composes the local and cloud stores: reads are local-first with cloud
// fallback, and a cloud hit back-fills the local tier so later lookups stay on
// disk. Writes go to both tiers; a failed cloud write is only a warning.
type Dev struct {
	local  *Local
	cloud  *Cloud
	logger ports.Logger
}

// NewDev composes a Dev store from the two tiers.
func NewDev(local *Local, cloud *Cloud, logger ports.Logger) *Dev {
	return &Dev{local: local, cloud: cloud, logger: logger}
}

// Lookup checks local first, then falls back to the cloud. On a cloud hit the
// entry is published into the local cache before being returned, so the caller
// always receives a locally backed archive path.
func (d *Dev) Lookup(ctx context.Context, key domain.CacheKey) (*domain.CacheEntry, error) {
	entry, err := d.local.Lookup(ctx, key)
	if err != nil {
		return nil, err
	}
	if entry != nil {
		return entry, nil
	}

	remote, err := d.cloud.Lookup(ctx, key)
	if err != nil || remote == nil {
		return nil, err
	}

	if err := d.local.Store(ctx, key, remote.Metadata, remote.ArchivePath); err != nil {
		d.logger.Warn("failed to populate local cache from remote hit", "key", key.Path(), "cause", err)
		return remote, nil
	}

	entry, err = d.local.Lookup(ctx, key)
	if err != nil || entry == nil {
		return remote, nil
	}
	remote.Release()
	return entry, nil
}

// Store publishes to both tiers concurrently. Only a local failure is
// surfaced; remote transfer failures never block a successful build.
func (d *Dev) Store(ctx context.Context, key domain.CacheKey, meta domain.Metadata, archivePath string) error {
	var g errgroup.Group
	g.Go(func() error {
		return d.local.Store(ctx, key, meta, archivePath)
	})
	g.Go(func() error {
		if err := d.cloud.Store(ctx, key, meta, archivePath); err != nil {
			d.logger.Warn("remote cache store failed", "key", key.Path(), "cause", err)
		}
		return nil
	})
	return g.Wait()
}
