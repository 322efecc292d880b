package objectstore

import (
	"bytes"
	"context"
	"io"
	"sync"

	"go.trai.ch/quack/internal/core/domain"
	"go.trai.ch/quack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ObjectStore = (*Memory)(nil)

// Memory is an in-memory object store. It backs the cache tests and serves as
// the reference behavior for the ObjectStore contract.
type Memory struct {
	mu      sync.RWMutex
	objects map[string][]byte

	// FailAll, when set, makes every operation fail. Tests use it to
	// exercise the degrade-to-miss paths.
	FailAll bool
}

// NewMemory creates an empty in-memory object store.
func NewMemory() *Memory {
	return &Memory{objects: make(map[string][]byte)}
}

// Put stores the bytes read from r under key.
func (m *Memory) Put(_ context.Context, key string, r io.Reader, _ int64) error {
	if m.FailAll {
		return zerr.New("object store unavailable")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return zerr.Wrap(err, "failed to read object payload")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

// Get returns a reader over the stored bytes, or domain.ErrObjectNotFound.
func (m *Memory) Get(_ context.Context, key string) (io.ReadCloser, error) {
	if m.FailAll {
		return nil, zerr.New("object store unavailable")
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, zerr.With(domain.ErrObjectNotFound, "key", key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Exists reports whether key is present.
func (m *Memory) Exists(_ context.Context, key string) (bool, error) {
	if m.FailAll {
		return false, zerr.New("object store unavailable")
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[key]
	return ok, nil
}

// Len returns the number of stored objects.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
