package app

import (
	"context"

	"github.com/dustin/go-humanize/english"

	"github.com/radian-software/fstunes/internal/importer"
)

// Import copies media files into the library.
func (a *App) Import(ctx context.Context, paths []string) error {
	report, err := importer.New(a.Root, a.ReadMetadata).Import(ctx, paths)
	if err != nil {
		return err
	}
	a.printf("imported %s, skipped %d already present and %d unrecognized\n",
		english.Plural(report.Imported, "media file", ""), report.Present, report.Unrecognized)
	return nil
}
