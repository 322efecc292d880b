package cache

import (
	"encoding/json"
	"os"

	"go.trai.ch/quack/internal/core/domain"
	"go.trai.ch/zerr"
)

func readMetadata(path string) (domain.Metadata, error) {
	var meta domain.Metadata
	data, err := os.ReadFile(path) //nolint:gosec // Path is cache-internal
	if err != nil {
		return meta, zerr.With(zerr.Wrap(err, "failed to read metadata"), "path", path)
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return meta, zerr.With(zerr.Wrap(err, "failed to parse metadata"), "path", path)
	}
	return meta, nil
}

func writeMetadata(path string, meta domain.Metadata) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal metadata")
	}
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write metadata"), "path", path)
	}
	return nil
}
