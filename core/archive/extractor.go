// Package archive unpacks Moodle course backups (.mbz files).
// An .mbz file is a gzip-compressed tar stream; only directories and
// regular files are materialised.
package archive

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gaurav-prasanna/mbz2md/core"
)

// TarExtractor unpacks gzip-compressed tar archives onto disk.
type TarExtractor struct{}

// New creates a TarExtractor.
func New() *TarExtractor {
	return &TarExtractor{}
}

// Extract unpacks archivePath into destDir and returns the number of files
// written. Entries that would land outside destDir are rejected.
func (e *TarExtractor) Extract(ctx context.Context, archivePath, destDir string) (int, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, core.ArchiveNotFound(archivePath)
		}
		return 0, fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return 0, fmt.Errorf("reading gzip stream %s: %w", archivePath, err)
	}
	defer gz.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return 0, fmt.Errorf("creating extract directory: %w", err)
	}

	tr := tar.NewReader(gz)
	files := 0
	for {
		if err := ctx.Err(); err != nil {
			return files, err
		}

		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return files, nil
		}
		if err != nil {
			return files, fmt.Errorf("reading tar entry: %w", err)
		}

		target, err := safeJoin(destDir, hdr.Name)
		if err != nil {
			return files, err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return files, fmt.Errorf("creating directory %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := writeFile(target, tr); err != nil {
				return files, err
			}
			files++
		}
	}
}

func writeFile(path string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", filepath.Dir(path), err)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	return out.Close()
}

// safeJoin resolves an archive entry name below root.
func safeJoin(root, name string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("archive entry %q escapes the extract directory", name)
	}
	return filepath.Join(root, cleaned), nil
}
