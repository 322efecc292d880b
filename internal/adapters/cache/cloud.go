package cache

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/quack/internal/core/domain"
	"go.trai.ch/quack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CacheStore = (*Cloud)(nil)

// Cloud operates against a remote object store. Artifacts only touch the
// local disk transiently during transfer. Remote failures, including
// timeouts, degrade to a miss on lookup and to a warning on store; they are
// never fatal to a build.
type Cloud struct {
	objects ports.ObjectStore
	prefix  string
	logger  ports.Logger
}

// NewCloud creates a Cloud store writing under the given key prefix.
func NewCloud(objects ports.ObjectStore, prefix string, logger ports.Logger) *Cloud {
	return &Cloud{objects: objects, prefix: prefix, logger: logger}
}

func (c *Cloud) metadataKey(key domain.CacheKey) string {
	return c.prefix + "/" + key.Path() + "/" + domain.MetadataFileName
}

func (c *Cloud) archiveKey(key domain.CacheKey) string {
	return c.prefix + "/" + key.Path() + "/" + key.ArchiveFileName()
}

// Exists checks for the remote metadata object. Store uploads the metadata last,
// so its presence implies a complete entry.
func (c *Cloud) Exists(ctx context.Context, key domain.CacheKey) (bool, error) {
	return c.objects.Exists(ctx, c.metadataKey(key))
}

// Lookup downloads metadata and archive on demand into a transient directory.
func (c *Cloud) Lookup(ctx context.Context, key domain.CacheKey) (*domain.CacheEntry, error) {
	ok, err := c.Exists(ctx, key)
	if err != nil {
		c.logger.Warn("remote cache unreachable, treating as miss", "key", key.Path(), "cause", err)
		return nil, nil
	}
	if !ok {
		return nil, nil
	}

	dir, err := os.MkdirTemp("", "quack-cache-")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create transfer directory")
	}

	metaPath := filepath.Join(dir, domain.MetadataFileName)
	archivePath := filepath.Join(dir, key.ArchiveFileName())
	if err := c.download(ctx, c.metadataKey(key), metaPath); err != nil {
		c.logger.Warn("remote metadata transfer failed, treating as miss", "key", key.Path(), "cause", err)
		_ = os.RemoveAll(dir)
		return nil, nil
	}
	if err := c.download(ctx, c.archiveKey(key), archivePath); err != nil {
		c.logger.Warn("remote archive transfer failed, treating as miss", "key", key.Path(), "cause", err)
		_ = os.RemoveAll(dir)
		return nil, nil
	}

	meta, err := readMetadata(metaPath)
	if err != nil {
		c.logger.Warn("remote metadata unreadable, treating as miss", "key", key.Path(), "cause", err)
		_ = os.RemoveAll(dir)
		return nil, nil
	}

	return &domain.CacheEntry{
		Metadata:    meta,
		ArchivePath: archivePath,
		Cleanup:     func() { _ = os.RemoveAll(dir) },
	}, nil
}

// Store uploads the archive first and the metadata last, so that concurrent
// lookups never observe a metadata object without its archive.
func (c *Cloud) Store(ctx context.Context, key domain.CacheKey, meta domain.Metadata, archivePath string) error {
	if err := c.upload(ctx, c.archiveKey(key), archivePath); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to upload archive"), "key", key.Path())
	}

	// A per-call directory keeps concurrent stores of identical checksums
	// from clobbering each other's metadata file.
	dir, err := os.MkdirTemp("", "quack-meta-")
	if err != nil {
		return zerr.Wrap(err, "failed to create transfer directory")
	}
	defer os.RemoveAll(dir) //nolint:errcheck // Transient directory

	metaPath := filepath.Join(dir, domain.MetadataFileName)
	if err := writeMetadata(metaPath, meta); err != nil {
		return err
	}

	if err := c.upload(ctx, c.metadataKey(key), metaPath); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to upload metadata"), "key", key.Path())
	}
	return nil
}

func (c *Cloud) download(ctx context.Context, key, dest string) error {
	r, err := c.objects.Get(ctx, key)
	if err != nil {
		return err
	}
	defer r.Close() //nolint:errcheck // Best effort close in defer

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, domain.FilePerm) //nolint:gosec // Destination is a fresh temp dir
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create download target"), "path", dest)
	}
	defer out.Close() //nolint:errcheck // Double close after explicit close below

	if _, err := io.Copy(out, r); err != nil {
		return zerr.With(zerr.Wrap(err, "download interrupted"), "key", key)
	}
	return out.Close()
}

func (c *Cloud) upload(ctx context.Context, key, src string) error {
	f, err := os.Open(src) //nolint:gosec // Paths are cache-internal
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open upload source"), "path", src)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	info, err := f.Stat()
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat upload source"), "path", src)
	}
	return c.objects.Put(ctx, key, f, info.Size())
}
