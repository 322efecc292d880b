package archive

import (
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// FileChecksum returns the xxhash64 hex digest of a file, matching the
// ArchiveInfo.Checksum produced by Pack. The cache uses it to detect
// truncated or corrupted local archives before restoring them.
func FileChecksum(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Path is cache-internal
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to open archive"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to hash archive"), "path", path)
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}
