package tags

import (
	"encoding/binary"
	"strings"

	goflac "github.com/go-flac/go-flac"
)

// readFLACComments reads the Vorbis comment block of a FLAC file directly.
// Files without a comment block are handed to TagLib.
func readFLACComments(path string) (*Tag, error) {
	f, err := goflac.ParseFile(path)
	if err != nil {
		return readWithTaglib(path)
	}

	var comments map[string]string
	for _, meta := range f.Meta {
		if meta.Type == goflac.VorbisComment {
			comments = parseVorbisComments(meta.Data)
			break
		}
	}
	if comments == nil {
		return readWithTaglib(path)
	}

	track, _ := parseNumberPair(comments["TRACKNUMBER"])
	disc, _ := parseNumberPair(comments["DISCNUMBER"])
	return &Tag{
		Path:        path,
		Title:       comments["TITLE"],
		Artist:      comments["ARTIST"],
		AlbumArtist: comments["ALBUMARTIST"],
		Album:       comments["ALBUM"],
		TrackNumber: track,
		DiscNumber:  disc,
	}, nil
}

// parseVorbisComments parses raw Vorbis comment data into a map keyed by
// upper-cased field name. The first value of a repeated field wins.
func parseVorbisComments(data []byte) map[string]string {
	comments := make(map[string]string)

	if len(data) < 4 {
		return comments
	}

	// Skip vendor string
	pos := 4 + int(binary.LittleEndian.Uint32(data))
	if pos < 4 || pos+4 > len(data) {
		return comments
	}

	count := int(binary.LittleEndian.Uint32(data[pos:]))
	pos += 4

	for i := 0; i < count && pos+4 <= len(data); i++ {
		n := int(binary.LittleEndian.Uint32(data[pos:]))
		pos += 4
		if n < 0 || pos+n > len(data) {
			break
		}
		comment := string(data[pos : pos+n])
		pos += n

		if key, value, ok := strings.Cut(comment, "="); ok && key != "" {
			key = strings.ToUpper(key)
			if _, seen := comments[key]; !seen {
				comments[key] = value
			}
		}
	}

	return comments
}
