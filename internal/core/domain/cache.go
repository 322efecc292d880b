package domain

import (
	"path/filepath"
	"time"
)

const (
	// MetadataFileName is the name of the metadata file inside a cache entry directory.
	MetadataFileName = "metadata.json"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// CacheKey identifies a cache entry. The triple (App, Target, Checksum) maps
// to one immutable entry directory; a changed checksum is a new entry, never
// an overwrite.
type CacheKey struct {
	App      string
	Target   string
	Checksum string
}

// Path returns the entry directory relative to a cache root, using forward
// slashes so the same shape serves as a remote object key prefix.
func (k CacheKey) Path() string {
	return k.App + "/" + k.Target + "/" + k.Checksum
}

// ArchiveFileName returns the archive file name for this entry.
func (k CacheKey) ArchiveFileName() string {
	return k.Target + ".tar.gz"
}

// Metadata is the structured record stored beside each archive. The JSON shape
// is a durable on-disk contract shared with remote entries.
type Metadata struct {
	Checksum        string    `json:"checksum"`
	ArchiveChecksum string    `json:"archive_checksum"`
	Size            int64     `json:"size"`
	Outputs         []string  `json:"outputs"`
	Hostname        string    `json:"hostname,omitzero"`
	CreatedAt       time.Time `json:"created_at"`
}

// CacheEntry pairs the metadata record with the local path of its archive.
type CacheEntry struct {
	Metadata    Metadata
	ArchivePath string

	// Cleanup releases transient resources backing ArchivePath, if any.
	// Callers invoke it through Release once the archive is consumed.
	Cleanup func()
}

// Release invokes the cleanup hook when one is set.
func (e *CacheEntry) Release() {
	if e.Cleanup != nil {
		e.Cleanup()
	}
}

// DefaultCacheDir returns the default local cache root for the given base
// directory (normally the user cache dir).
func DefaultCacheDir(base string) string {
	return filepath.Join(base, "quack")
}
