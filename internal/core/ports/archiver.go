package ports

// ArchiveInfo describes a packed archive.
type ArchiveInfo struct {
	// Checksum is the xxhash64 hex digest of the archive file, used as a
	// cheap local integrity check. It is not the target checksum.
	Checksum string
	Size     int64
}

// Archiver packs declared output paths into a single artifact and restores
// them again, preserving relative paths and file modes.
//
//go:generate go run go.uber.org/mock/mockgen -source=archiver.go -destination=mocks/mock_archiver.go -package=mocks
type Archiver interface {
	// Pack walks each path under root (file or directory, recursively) and
	// writes a compressed archive to dest. A path that does not exist is an
	// error: it signals a misconfigured target.
	Pack(paths []string, root, dest string) (ArchiveInfo, error)

	// Unpack restores the archive under root, overwriting pre-existing files
	// at the same relative paths. Entries escaping root are rejected.
	Unpack(src, root string) error
}
