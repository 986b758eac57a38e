package app

import (
	"slices"

	"github.com/radian-software/fstunes/internal/library"
	"github.com/radian-software/fstunes/internal/match"
	"github.com/radian-software/fstunes/internal/render"
)

// metadataFields are the fields stored in a canonical path.
var metadataFields = []match.Field{
	match.FieldArtist,
	match.FieldAlbum,
	match.FieldDisk,
	match.FieldTrack,
	match.FieldSong,
	match.FieldExtension,
}

// ParseFields resolves field names. No names selects nil.
func ParseFields(names []string) ([]match.Field, error) {
	fields := make([]match.Field, 0, len(names))
	for _, name := range names {
		f, err := match.ParseField(name)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// List prints the selected songs as a table. Without fields, the metadata
// fields are shown, plus from and index when any song comes from a playlist.
func (a *App) List(sel Selection, fields []match.Field) error {
	songs, err := a.songs(sel)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		fields = defaultListFields(songs)
	}

	header := make([]string, len(fields))
	for i, f := range fields {
		header[i] = f.String()
	}
	rows := make([][]string, len(songs))
	for i, s := range songs {
		row := make([]string, len(fields))
		for j, f := range fields {
			row[j] = s.Value(f).Text(f)
		}
		rows[i] = row
	}
	return render.Table(a.Out, a.Styles, header, rows)
}

func defaultListFields(songs []library.Song) []match.Field {
	fields := slices.Clone(metadataFields)
	if slices.ContainsFunc(songs, library.Song.FromPlaylist) {
		fields = append(fields, match.FieldFrom, match.FieldIndex)
	}
	return fields
}
