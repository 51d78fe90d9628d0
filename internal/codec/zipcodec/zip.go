// Package zipcodec provides a zip archive codec backed by klauspost/compress.
package zipcodec

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"

	"github.com/infracollect/dirarchive/internal/codec"
)

// Compile-time check that Codec implements codec.Codec.
var _ codec.Codec = (*Codec)(nil)

// ErrIllegalPath is returned when an archive entry would land outside the destination directory.
var ErrIllegalPath = errors.New("archive entry escapes destination directory")

// Method defines the compression method used for file entries.
type Method string

const (
	MethodDeflate Method = "deflate"
	MethodStore   Method = "store"
	MethodZstd    Method = "zstd"
)

const (
	// Extension is the canonical zip file extension.
	Extension = "zip"

	defaultFileMode os.FileMode = 0o644
	defaultDirMode  os.FileMode = 0o755
)

// Codec writes and reads zip archives.
type Codec struct {
	method Method
	level  int
}

// New creates a zip codec with the given entry method and deflate level.
// Supported methods: "deflate", "store", "zstd". If method is empty, defaults to "deflate".
// The level is only used by deflate and must be in [-2, 9].
func New(method string, level int) (*Codec, error) {
	m := Method(method)
	if m == "" {
		m = MethodDeflate
	}

	switch m {
	case MethodDeflate, MethodStore, MethodZstd:
	default:
		return nil, fmt.Errorf("unsupported zip method: %s", method)
	}

	if level < flate.HuffmanOnly || level > flate.BestCompression {
		return nil, fmt.Errorf("invalid deflate level %d: must be between %d and %d", level, flate.HuffmanOnly, flate.BestCompression)
	}

	return &Codec{method: m, level: level}, nil
}

// Default returns a deflate codec with the default compression level.
func Default() *Codec {
	return &Codec{method: MethodDeflate, level: flate.DefaultCompression}
}

// Extension returns "zip".
func (c *Codec) Extension() string {
	return Extension
}

// Method returns the method used for file entries.
func (c *Codec) Method() Method {
	return c.method
}

func (c *Codec) zipMethod() uint16 {
	switch c.method {
	case MethodStore:
		return zip.Store
	case MethodZstd:
		return zstd.ZipMethodWinZip
	default:
		return zip.Deflate
	}
}

func (c *Codec) newWriter(w io.Writer) *zip.Writer {
	zw := zip.NewWriter(w)
	level := c.level
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})
	zw.RegisterCompressor(zstd.ZipMethodWinZip, zstd.ZipCompressor())
	return zw
}

// Compress walks sourceDir and writes every directory and regular file into a new zip
// archive at archivePath. Entry names are slash separated and relative to sourceDir.
func (c *Codec) Compress(fs afero.Fs, sourceDir, archivePath string) (err error) {
	f, err := fs.Create(archivePath)
	if err != nil {
		return fmt.Errorf("failed to create zip file: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	zw := c.newWriter(f)
	self := filepath.Clean(archivePath)

	walkErr := afero.Walk(fs, sourceDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}
		if rel == "." || filepath.Clean(path) == self {
			return nil
		}
		name := filepath.ToSlash(rel)

		if info.Mode()&os.ModeSymlink != 0 {
			// Follow links to regular files, skip the rest to stay out of cycles.
			target, err := fs.Stat(path)
			if err != nil {
				return fmt.Errorf("failed to resolve symlink %s: %w", path, err)
			}
			if !target.Mode().IsRegular() {
				return nil
			}
			info = target
		}

		switch {
		case info.IsDir():
			return c.addDir(zw, name, info)
		case info.Mode().IsRegular():
			return c.addFile(zw, fs, path, name, info)
		default:
			return nil
		}
	})
	if walkErr != nil {
		return fmt.Errorf("failed to walk %s: %w", sourceDir, walkErr)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to close zip writer: %w", err)
	}

	return nil
}

func (c *Codec) addDir(zw *zip.Writer, name string, info os.FileInfo) error {
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("failed to build header for %s: %w", name, err)
	}
	header.Name = name + "/"
	header.Method = zip.Store

	if _, err := zw.CreateHeader(header); err != nil {
		return fmt.Errorf("failed to create zip entry %s: %w", header.Name, err)
	}
	return nil
}

func (c *Codec) addFile(zw *zip.Writer, fs afero.Fs, path, name string, info os.FileInfo) error {
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("failed to build header for %s: %w", name, err)
	}
	header.Name = name
	header.Method = c.zipMethod()

	entry, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to create zip entry %s: %w", name, err)
	}

	src, err := fs.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer src.Close()

	if _, err := io.Copy(entry, src); err != nil {
		return fmt.Errorf("failed to write zip entry %s: %w", name, err)
	}
	return nil
}

// Extract unpacks every entry of the zip archive at archivePath below destinationDir.
// It fails on the first entry that cannot be written or that escapes destinationDir.
func (c *Codec) Extract(fs afero.Fs, archivePath, destinationDir string) error {
	f, err := fs.Open(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open zip file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat zip file: %w", err)
	}

	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		return fmt.Errorf("failed to read zip file: %w", err)
	}
	zr.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor())

	if err := fs.MkdirAll(destinationDir, defaultDirMode); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	for _, entry := range zr.File {
		target, err := entryPath(destinationDir, entry.Name)
		if err != nil {
			return err
		}

		if entry.FileInfo().IsDir() {
			if err := fs.MkdirAll(target, entry.Mode().Perm()|0o700); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
			continue
		}

		if err := extractFile(fs, entry, target); err != nil {
			return err
		}
	}

	return nil
}

func extractFile(fs afero.Fs, entry *zip.File, target string) error {
	if err := fs.MkdirAll(filepath.Dir(target), defaultDirMode); err != nil {
		return fmt.Errorf("failed to create parent directory for %s: %w", target, err)
	}

	mode := entry.Mode().Perm()
	if mode == 0 {
		mode = defaultFileMode
	}

	src, err := entry.Open()
	if err != nil {
		return fmt.Errorf("failed to open zip entry %s: %w", entry.Name, err)
	}
	defer src.Close()

	dst, err := fs.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", target, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		return errors.Join(fmt.Errorf("failed to extract zip entry %s: %w", entry.Name, err), dst.Close())
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("failed to close file %s: %w", target, err)
	}

	if !entry.Modified.IsZero() {
		if err := fs.Chtimes(target, entry.Modified, entry.Modified); err != nil {
			return fmt.Errorf("failed to set times on %s: %w", target, err)
		}
	}
	return nil
}

// entryPath joins an archive entry name onto root, refusing names that are absolute or
// that climb out of root.
func entryPath(root, name string) (string, error) {
	if name == "" || strings.HasPrefix(name, "/") || filepath.IsAbs(name) || filepath.VolumeName(name) != "" {
		return "", fmt.Errorf("%w: %q", ErrIllegalPath, name)
	}

	target := filepath.Join(root, filepath.FromSlash(name))
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrIllegalPath, name)
	}
	return target, nil
}
