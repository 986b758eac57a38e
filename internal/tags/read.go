package tags

import (
	"fmt"
	"os"

	"github.com/dhowden/tag"

	"github.com/radian-software/fstunes/internal/media"
)

// Read reads tag metadata from a music file. When dhowden/tag cannot parse
// the file a format-specific reader is tried.
func Read(path string) (*Tag, error) {
	if !IsMusicFile(path) {
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupported)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		switch Extension(path) {
		case ExtMP3:
			// dhowden/tag has issues with some UTF-16 encoded ID3 tags
			return readMP3WithID3v2(path)
		case ExtFLAC:
			return readFLACComments(path)
		default:
			// dhowden/tag can't parse some ffmpeg-created M4A and Ogg files
			return readWithTaglib(path)
		}
	}

	track, _ := m.Track()
	disc, _ := m.Disc()
	return &Tag{
		Path:        path,
		Title:       m.Title(),
		Artist:      m.Artist(),
		AlbumArtist: m.AlbumArtist(),
		Album:       m.Album(),
		TrackNumber: track,
		DiscNumber:  disc,
	}, nil
}

// ReadMetadata reads the song record of a music file.
func ReadMetadata(path string) (media.Metadata, error) {
	t, err := Read(path)
	if err != nil {
		return media.Metadata{}, err
	}
	return t.Metadata(), nil
}
