package library

import (
	"github.com/radian-software/fstunes/internal/match"
	"github.com/radian-software/fstunes/internal/media"
)

// Song is a canonical file, either found directly in the media tree or
// referenced by a playlist entry.
type Song struct {
	media.Metadata

	// Path is the absolute canonical path.
	Path string
	// Source is match.MediaSource or the name of the playlist holding the entry.
	Source string
	// Entry is the on-disk index of the playlist entry. Unused for media songs.
	Entry int64
	// Index is the entry index as seen by the user, relative to the current
	// marker for the queue. Nil for media songs.
	Index *int64
}

// FromPlaylist reports whether the song was found through a playlist entry.
func (s Song) FromPlaylist() bool {
	return s.Source != match.MediaSource
}

// Value implements match.Valuer.
func (s Song) Value(f match.Field) match.Value {
	switch f {
	case match.FieldArtist:
		return match.StringValue(s.Artist)
	case match.FieldAlbum:
		return match.StringValue(s.Album)
	case match.FieldDisk:
		return match.IntValue(s.Disk)
	case match.FieldTrack:
		return match.IntValue(s.Track)
	case match.FieldSong:
		return match.StringValue(s.Song)
	case match.FieldExtension:
		return match.Value{Present: true, Str: s.Extension}
	case match.FieldFrom:
		return match.Value{Present: true, Str: s.Source}
	case match.FieldIndex:
		return match.Int64Value(s.Index)
	}
	return match.Value{}
}
