package cache

import (
	"sync"

	"go.trai.ch/quack/internal/core/domain"
	"go.trai.ch/quack/internal/core/ports"
)

// Selector hands out one store per cache mode, constructed lazily. Targets may
// override the global cache policy, so the orchestrator asks for a store per
// target instead of holding a single one.
type Selector struct {
	opts   Options
	logger ports.Logger

	mu     sync.Mutex
	stores map[domain.CacheMode]ports.CacheStore
}

// NewSelector creates a Selector sharing one Options across all modes.
func NewSelector(opts Options, logger ports.Logger) *Selector {
	return &Selector{
		opts:   opts,
		logger: logger,
		stores: make(map[domain.CacheMode]ports.CacheStore),
	}
}

// ForMode returns the store for the given mode, constructing it on first use.
func (s *Selector) ForMode(mode domain.CacheMode) (ports.CacheStore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if store, ok := s.stores[mode]; ok {
		return store, nil
	}
	store, err := New(mode, s.opts, s.logger)
	if err != nil {
		return nil, err
	}
	s.stores[mode] = store
	return store, nil
}
