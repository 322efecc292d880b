// Package archive packs declared output paths into a gzip-compressed tar
// artifact and restores them again.
package archive

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/quack/internal/core/domain"
	"go.trai.ch/quack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Archiver = (*Archiver)(nil)

// Archiver implements ports.Archiver with archive/tar + gzip. Entries keep
// their paths relative to the packing root and their mode bits.
type Archiver struct{}

// New creates a new Archiver.
func New() *Archiver {
	return &Archiver{}
}

// Pack writes a compressed archive of the given paths to dest. Each path is
// resolved under root; a missing path fails fast since it signals a target
// whose build did not produce its declared outputs.
func (a *Archiver) Pack(paths []string, root, dest string) (ports.ArchiveInfo, error) {
	out, err := os.Create(dest) //nolint:gosec // Destination is cache-internal
	if err != nil {
		return ports.ArchiveInfo{}, zerr.With(zerr.Wrap(err, "failed to create archive"), "path", dest)
	}
	defer out.Close() //nolint:errcheck // Double close after explicit close below

	digest := xxhash.New()
	gz := gzip.NewWriter(io.MultiWriter(out, digest))
	tw := tar.NewWriter(gz)

	for _, path := range paths {
		abs := filepath.Join(root, filepath.FromSlash(path))
		info, err := os.Lstat(abs)
		if err != nil {
			if os.IsNotExist(err) {
				return ports.ArchiveInfo{}, zerr.With(domain.ErrMissingOutput, "path", path)
			}
			return ports.ArchiveInfo{}, zerr.With(zerr.Wrap(err, "failed to stat output"), "path", path)
		}

		if info.IsDir() {
			if err := a.packDir(tw, root, abs); err != nil {
				return ports.ArchiveInfo{}, err
			}
		} else {
			if err := a.packEntry(tw, root, abs, info); err != nil {
				return ports.ArchiveInfo{}, err
			}
		}
	}

	if err := tw.Close(); err != nil {
		return ports.ArchiveInfo{}, zerr.Wrap(err, "failed to finalize archive")
	}
	if err := gz.Close(); err != nil {
		return ports.ArchiveInfo{}, zerr.Wrap(err, "failed to finalize compression")
	}
	if err := out.Close(); err != nil {
		return ports.ArchiveInfo{}, zerr.Wrap(err, "failed to close archive")
	}

	stat, err := os.Stat(dest)
	if err != nil {
		return ports.ArchiveInfo{}, zerr.Wrap(err, "failed to stat archive")
	}
	return ports.ArchiveInfo{
		Checksum: fmt.Sprintf("%016x", digest.Sum64()),
		Size:     stat.Size(),
	}, nil
}

func (a *Archiver) packDir(tw *tar.Writer, root, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to walk output directory"), "path", path)
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to stat output file"), "path", path)
		}
		return a.packEntry(tw, root, path, info)
	})
}

// packEntry archives a single non-directory entry. Symlinks keep their link
// target; other special files (sockets, devices) are not archivable outputs
// and are skipped.
func (a *Archiver) packEntry(tw *tar.Writer, root, path string, info fs.FileInfo) error {
	switch {
	case info.Mode().IsRegular():
		return a.packFile(tw, root, path, info)
	case info.Mode()&fs.ModeSymlink != 0:
		return a.packSymlink(tw, root, path, info)
	default:
		return nil
	}
}

func (a *Archiver) packFile(tw *tar.Writer, root, path string, info fs.FileInfo) error {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to relativize output path"), "path", path)
	}

	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to build archive header"), "path", path)
	}
	hdr.Name = filepath.ToSlash(rel)

	if err := tw.WriteHeader(hdr); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write archive header"), "path", path)
	}

	f, err := os.Open(path) //nolint:gosec // Paths are declared target outputs
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open output file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	if _, err := io.Copy(tw, f); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to archive output file"), "path", path)
	}
	return nil
}

func (a *Archiver) packSymlink(tw *tar.Writer, root, path string, info fs.FileInfo) error {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to relativize output path"), "path", path)
	}

	link, err := os.Readlink(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read symlink"), "path", path)
	}

	hdr, err := tar.FileInfoHeader(info, link)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to build archive header"), "path", path)
	}
	hdr.Name = filepath.ToSlash(rel)

	if err := tw.WriteHeader(hdr); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write archive header"), "path", path)
	}
	return nil
}

// Unpack restores the archive under root, overwriting any pre-existing files
// at the same relative paths. Unpacking the same archive twice yields the same
// tree. Entries that would escape root are rejected.
func (a *Archiver) Unpack(src, root string) error {
	f, err := os.Open(src) //nolint:gosec // Source is cache-internal
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open archive"), "path", src)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	gz, err := gzip.NewReader(f)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read compressed archive"), "path", src)
	}
	defer gz.Close() //nolint:errcheck // Best effort close in defer

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to read archive entry"), "path", src)
		}

		dest, err := securePath(root, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(dest, domain.DirPerm); err != nil {
				return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", dest)
			}
		case tar.TypeReg:
			if err := a.restoreFile(tr, dest, hdr); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := a.restoreSymlink(root, dest, hdr); err != nil {
				return err
			}
		default:
			// Special files are not produced by Pack; skip anything else.
			continue
		}
	}
}

func (a *Archiver) restoreFile(tr *tar.Reader, dest string, hdr *tar.Header) error {
	if err := os.MkdirAll(filepath.Dir(dest), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", dest)
	}

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fs.FileMode(hdr.Mode)) //nolint:gosec // Path verified by securePath
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create file"), "path", dest)
	}
	defer out.Close() //nolint:errcheck // Double close after explicit close below

	if _, err := io.Copy(out, tr); err != nil { //nolint:gosec // Archive sizes are bounded by what Pack produced
		return zerr.With(zerr.Wrap(err, "failed to restore file"), "path", dest)
	}
	return out.Close()
}

// restoreSymlink recreates a symlink entry. The link target must stay inside
// root when resolved relative to the link's directory, so a restored entry
// can never point outside the unpacked tree.
func (a *Archiver) restoreSymlink(root, dest string, hdr *tar.Header) error {
	if filepath.IsAbs(hdr.Linkname) {
		return zerr.With(domain.ErrPathTraversal, "entry", hdr.Name)
	}
	resolved := filepath.Join(filepath.Dir(dest), filepath.FromSlash(hdr.Linkname))
	if rel, err := filepath.Rel(root, resolved); err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return zerr.With(domain.ErrPathTraversal, "entry", hdr.Name)
	}

	if err := os.MkdirAll(filepath.Dir(dest), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", dest)
	}
	if err := os.Remove(dest); err != nil && !os.IsNotExist(err) {
		return zerr.With(zerr.Wrap(err, "failed to replace existing file"), "path", dest)
	}
	if err := os.Symlink(hdr.Linkname, dest); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to restore symlink"), "path", dest)
	}
	return nil
}

// securePath joins name under root and guarantees the result stays inside it.
func securePath(root, name string) (string, error) {
	if filepath.IsAbs(name) {
		return "", zerr.With(domain.ErrPathTraversal, "entry", name)
	}
	dest := filepath.Join(root, filepath.FromSlash(name))
	rel, err := filepath.Rel(root, dest)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", zerr.With(domain.ErrPathTraversal, "entry", name)
	}
	return dest, nil
}
