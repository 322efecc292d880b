package cache

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.trai.ch/quack/internal/adapters/archive"
	"go.trai.ch/quack/internal/core/domain"
	"go.trai.ch/quack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CacheStore = (*Local)(nil)

// Local operates against the local cache root. Entries are assembled in a
// staging directory on the same volume and published with one rename, so a
// concurrent reader never observes a partially written entry. There is no
// cross-process build lock: two processes may redundantly build the same key,
// and whichever publish wins leaves a complete entry behind.
type Local struct {
	root   string
	logger ports.Logger
}

// NewLocal creates a Local store rooted at the given cache directory.
func NewLocal(root string, logger ports.Logger) *Local {
	return &Local{root: root, logger: logger}
}

// Root returns the local cache root directory.
func (l *Local) Root() string {
	return l.root
}

func (l *Local) entryDir(key domain.CacheKey) string {
	return filepath.Join(l.root, filepath.FromSlash(key.Path()))
}

// Lookup checks for the metadata+archive pair on disk. A corrupt entry (bad
// archive digest, unreadable metadata) is evicted and reported as a miss so a
// rebuild or a remote copy can replace it.
func (l *Local) Lookup(_ context.Context, key domain.CacheKey) (*domain.CacheEntry, error) {
	dir := l.entryDir(key)
	metaPath := filepath.Join(dir, domain.MetadataFileName)
	if _, err := os.Stat(metaPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to stat metadata"), "path", metaPath)
	}

	meta, err := readMetadata(metaPath)
	if err != nil {
		l.evictCorrupt(key, err)
		return nil, nil
	}

	archivePath := filepath.Join(dir, key.ArchiveFileName())
	sum, err := archive.FileChecksum(archivePath)
	if err != nil || sum != meta.ArchiveChecksum {
		l.evictCorrupt(key, zerr.With(zerr.With(domain.ErrCorruptEntry, "expected", meta.ArchiveChecksum), "actual", sum))
		return nil, nil
	}

	return &domain.CacheEntry{Metadata: meta, ArchivePath: archivePath}, nil
}

func (l *Local) evictCorrupt(key domain.CacheKey, cause error) {
	l.logger.Warn("evicting corrupt cache entry", "key", key.Path(), "cause", cause)
	_ = os.RemoveAll(l.entryDir(key))
}

// Store publishes a new entry. The archive and metadata are first written to
// <root>/.staging/<uuid>, then renamed to the entry directory. If another
// process published the same key first, its complete entry is kept.
func (l *Local) Store(_ context.Context, key domain.CacheKey, meta domain.Metadata, archivePath string) error {
	staging := filepath.Join(l.root, ".staging", uuid.NewString())
	if err := os.MkdirAll(staging, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create staging directory"), "path", staging)
	}
	defer os.RemoveAll(staging) //nolint:errcheck // Cleanup of leftovers after rename

	if err := copyFile(archivePath, filepath.Join(staging, key.ArchiveFileName())); err != nil {
		return err
	}
	if err := writeMetadata(filepath.Join(staging, domain.MetadataFileName), meta); err != nil {
		return err
	}

	dir := l.entryDir(key)
	if err := os.MkdirAll(filepath.Dir(dir), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create cache directory"), "path", dir)
	}

	if err := os.Rename(staging, dir); err != nil {
		if _, statErr := os.Stat(filepath.Join(dir, domain.MetadataFileName)); statErr == nil {
			// Lost the publish race; the winner's entry is equivalent.
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to publish cache entry"), "key", key.Path())
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src) //nolint:gosec // Paths are cache-internal
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open archive"), "path", src)
	}
	defer in.Close() //nolint:errcheck // Best effort close in defer

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, domain.FilePerm) //nolint:gosec // Paths are cache-internal
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create archive copy"), "path", dest)
	}
	defer out.Close() //nolint:errcheck // Double close after explicit close below

	if _, err := io.Copy(out, in); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to copy archive"), "path", dest)
	}
	return out.Close()
}
