// Package importer copies music files into the canonical tree of a library.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/radian-software/fstunes/internal/errmsg"
	"github.com/radian-software/fstunes/internal/library"
	"github.com/radian-software/fstunes/internal/media"
)

// MetadataReader reads the song record of a file. Files it cannot read are
// counted as unrecognized.
type MetadataReader func(path string) (media.Metadata, error)

// Report counts the outcome of an import.
type Report struct {
	Imported     int
	Present      int
	Unrecognized int
}

// Importer copies files into a library.
type Importer struct {
	root *library.Root
	read MetadataReader
}

// New returns an importer for root.
func New(root *library.Root, read MetadataReader) *Importer {
	return &Importer{root: root, read: read}
}

// Import walks every path, which may be a file or a directory, and copies
// each recognized file to its canonical path unless a file is already there.
func (im *Importer) Import(ctx context.Context, paths []string) (Report, error) {
	var report Report
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return report, errmsg.Configuration(errmsg.OpMediaImport, "cannot import %q: %v", p, err)
		}
		err := filepath.WalkDir(p, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if !d.Type().IsRegular() {
				return nil
			}
			return im.importFile(ctx, path, &report)
		})
		if err != nil {
			return report, err
		}
	}
	return report, nil
}

func (im *Importer) importFile(ctx context.Context, path string, report *Report) error {
	m, err := im.read(path)
	if err == nil {
		err = m.Validate()
	}
	if err != nil {
		log.Debug().Str("path", path).Err(err).Msg("unrecognized file")
		report.Unrecognized++
		return nil
	}

	dst, err := im.root.CanonicalPath(m)
	if err != nil {
		return err
	}
	if _, err := os.Lstat(dst); err == nil {
		log.Debug().Str("path", path).Str("canonical", dst).Msg("already present")
		report.Present++
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", dst, err)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(dst), err)
	}
	if err := retryWithBackoff(ctx, "copy "+path, func() error {
		return copyFile(path, dst)
	}); err != nil {
		return err
	}
	log.Debug().Str("path", path).Str("canonical", dst).Msg("imported")
	report.Imported++
	return nil
}

// copyFile copies src to dst through a temporary file next to dst, so a
// failed copy never leaves a truncated canonical file.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".import-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, srcFile); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}
