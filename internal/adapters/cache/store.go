// Package cache implements the multi-tier cache store: disabled, local-only,
// cloud-only, and the local+cloud dev composition.
package cache

import (
	"go.trai.ch/quack/internal/core/domain"
	"go.trai.ch/quack/internal/core/ports"
	"go.trai.ch/zerr"
)

// Options carries what the store constructors need beyond the mode itself.
type Options struct {
	// LocalRoot is the local cache root directory.
	LocalRoot string

	// Objects is the remote object store; required for cloud and dev modes.
	Objects ports.ObjectStore

	// Prefix is the remote key prefix, normally the configured bucket path.
	Prefix string
}

// New selects the store implementation for the given mode. The dev store
// composes the local and cloud implementations rather than duplicating them.
func New(mode domain.CacheMode, opts Options, logger ports.Logger) (ports.CacheStore, error) {
	switch mode {
	case domain.CacheModeDisabled:
		return NewDisabled(), nil
	case domain.CacheModeLocal:
		return NewLocal(opts.LocalRoot, logger), nil
	case domain.CacheModeCloud:
		if opts.Objects == nil {
			return nil, zerr.With(domain.ErrInvalidCacheMode, "reason", "cloud mode requires a remote object store")
		}
		return NewCloud(opts.Objects, opts.Prefix, logger), nil
	case domain.CacheModeDev:
		local := NewLocal(opts.LocalRoot, logger)
		if opts.Objects == nil {
			// Dev is the default mode; without a configured remote it
			// degrades to the local tier instead of failing the run.
			logger.Debug("no remote object store configured, dev cache uses the local tier only")
			return local, nil
		}
		cloud := NewCloud(opts.Objects, opts.Prefix, logger)
		return NewDev(local, cloud, logger), nil
	default:
		return nil, zerr.With(domain.ErrInvalidCacheMode, "mode", string(mode))
	}
}
