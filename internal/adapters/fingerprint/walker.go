package fingerprint

import (
	"io/fs"
	"path/filepath"

	"go.trai.ch/zerr"
)

// skipDirs are never considered as source inputs.
var skipDirs = map[string]bool{
	".git":   true,
	".quack": true,
}

// walkFiles returns every regular file under root as a slash-separated path
// relative to root. filepath.WalkDir visits entries in lexical order, so the
// result is deterministic without an extra sort.
func walkFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to walk project tree"), "path", path)
		}
		if d.IsDir() {
			if skipDirs[d.Name()] && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to relativize path"), "path", path)
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
