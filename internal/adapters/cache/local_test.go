package cache_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/quack/internal/adapters/archive"
	"go.trai.ch/quack/internal/adapters/cache"
	"go.trai.ch/quack/internal/adapters/logger"
	"go.trai.ch/quack/internal/core/domain"
	"go.trai.ch/quack/internal/core/ports"
)

func testLogger() ports.Logger {
	return logger.NewWithWriter(io.Discard, slog.LevelError)
}

func testKey() domain.CacheKey {
	return domain.CacheKey{App: "shop", Target: "api", Checksum: "abc123"}
}

// buildArchive packs a one-file output tree and returns the archive path with
// its matching metadata.
func buildArchive(t *testing.T, content string) (string, domain.Metadata) {
	t.Helper()
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "out.txt"), []byte(content), 0o600))

	path := filepath.Join(t.TempDir(), "api.tar.gz")
	info, err := archive.New().Pack([]string{"out.txt"}, src, path)
	require.NoError(t, err)

	return path, domain.Metadata{
		Checksum:        testKey().Checksum,
		ArchiveChecksum: info.Checksum,
		Size:            info.Size,
		Outputs:         []string{"out.txt"},
		CreatedAt:       time.Now().UTC(),
	}
}

func TestLocal_StoreThenLookup(t *testing.T) {
	store := cache.NewLocal(t.TempDir(), testLogger())
	archivePath, meta := buildArchive(t, "hello")

	require.NoError(t, store.Store(context.Background(), testKey(), meta, archivePath))

	entry, err := store.Lookup(context.Background(), testKey())
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, meta.ArchiveChecksum, entry.Metadata.ArchiveChecksum)
	assert.Equal(t, []string{"out.txt"}, entry.Metadata.Outputs)
	assert.FileExists(t, entry.ArchivePath)
}

func TestLocal_LookupMiss(t *testing.T) {
	store := cache.NewLocal(t.TempDir(), testLogger())

	entry, err := store.Lookup(context.Background(), testKey())
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestLocal_EntryLayout(t *testing.T) {
	root := t.TempDir()
	store := cache.NewLocal(root, testLogger())
	archivePath, meta := buildArchive(t, "hello")

	require.NoError(t, store.Store(context.Background(), testKey(), meta, archivePath))

	dir := filepath.Join(root, "shop", "api", "abc123")
	assert.FileExists(t, filepath.Join(dir, "metadata.json"))
	assert.FileExists(t, filepath.Join(dir, "api.tar.gz"))
}

func TestLocal_CorruptArchiveEvicted(t *testing.T) {
	root := t.TempDir()
	store := cache.NewLocal(root, testLogger())
	archivePath, meta := buildArchive(t, "hello")
	require.NoError(t, store.Store(context.Background(), testKey(), meta, archivePath))

	// Truncate the stored archive so its digest no longer matches.
	stored := filepath.Join(root, "shop", "api", "abc123", "api.tar.gz")
	require.NoError(t, os.WriteFile(stored, []byte("truncated"), 0o600))

	entry, err := store.Lookup(context.Background(), testKey())
	require.NoError(t, err)
	assert.Nil(t, entry, "corrupt entry reads as a miss")

	_, statErr := os.Stat(filepath.Join(root, "shop", "api", "abc123"))
	assert.True(t, os.IsNotExist(statErr), "corrupt entry is evicted")
}

func TestLocal_CorruptMetadataEvicted(t *testing.T) {
	root := t.TempDir()
	store := cache.NewLocal(root, testLogger())
	archivePath, meta := buildArchive(t, "hello")
	require.NoError(t, store.Store(context.Background(), testKey(), meta, archivePath))

	metaPath := filepath.Join(root, "shop", "api", "abc123", "metadata.json")
	require.NoError(t, os.WriteFile(metaPath, []byte("{not json"), 0o600))

	entry, err := store.Lookup(context.Background(), testKey())
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestLocal_StoreLosingRaceKeepsWinner(t *testing.T) {
	root := t.TempDir()
	store := cache.NewLocal(root, testLogger())
	archivePath, meta := buildArchive(t, "winner")
	require.NoError(t, store.Store(context.Background(), testKey(), meta, archivePath))

	// A second publish of the same key must not fail even though the entry
	// directory already exists.
	otherArchive, otherMeta := buildArchive(t, "winner")
	require.NoError(t, store.Store(context.Background(), testKey(), otherMeta, otherArchive))

	entry, err := store.Lookup(context.Background(), testKey())
	require.NoError(t, err)
	require.NotNil(t, entry)
}

func TestLocal_NoStagingLeftovers(t *testing.T) {
	root := t.TempDir()
	store := cache.NewLocal(root, testLogger())
	archivePath, meta := buildArchive(t, "hello")
	require.NoError(t, store.Store(context.Background(), testKey(), meta, archivePath))

	entries, err := os.ReadDir(filepath.Join(root, ".staging"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
