package media

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/radian-software/fstunes/internal/errmsg"
)

// filenamePattern is [<disk>-][<track>] <song><extension>. The escaped song
// never contains a literal dot, so the extension starts at the first dot.
var filenamePattern = regexp.MustCompile(`(?s)^(?:(0|[1-9][0-9]*)-)?(0|[1-9][0-9]*)? ([^.]+)(\..*)?$`)

// Encode returns the canonical relative path of m, using forward slashes.
func Encode(m Metadata) (string, error) {
	if err := m.Validate(); err != nil {
		return "", err
	}

	var name strings.Builder
	if m.Disk != nil {
		name.WriteString(strconv.Itoa(*m.Disk))
		name.WriteByte('-')
	}
	if m.Track != nil {
		name.WriteString(strconv.Itoa(*m.Track))
	}
	name.WriteByte(' ')
	name.WriteString(encodeComponent(m.Song))
	name.WriteString(m.Extension)

	return encodeComponent(m.Artist) + "/" + encodeComponent(m.Album) + "/" + name.String(), nil
}

// Decode parses a canonical relative path produced by Encode.
// Malformed paths yield an errmsg parse error.
func Decode(relpath string) (Metadata, error) {
	parts := strings.Split(relpath, "/")
	if len(parts) != 3 {
		return Metadata{}, errmsg.Parse(relpath, fmt.Errorf("expected artist/album/file, got %d components", len(parts)))
	}

	artist, err := decodeComponent(parts[0])
	if err != nil {
		return Metadata{}, errmsg.Parse(relpath, fmt.Errorf("artist: %w", err))
	}
	album, err := decodeComponent(parts[1])
	if err != nil {
		return Metadata{}, errmsg.Parse(relpath, fmt.Errorf("album: %w", err))
	}

	match := filenamePattern.FindStringSubmatch(parts[2])
	if match == nil {
		return Metadata{}, errmsg.Parse(relpath, fmt.Errorf("file name %q does not match [disk-][track] song.ext", parts[2]))
	}

	m := Metadata{Artist: artist, Album: album, Extension: match[4]}
	if match[1] != "" {
		disk, err := strconv.Atoi(match[1])
		if err != nil {
			return Metadata{}, errmsg.Parse(relpath, fmt.Errorf("disk: %w", err))
		}
		m.Disk = &disk
	}
	if match[2] != "" {
		track, err := strconv.Atoi(match[2])
		if err != nil {
			return Metadata{}, errmsg.Parse(relpath, fmt.Errorf("track: %w", err))
		}
		m.Track = &track
	}
	m.Song, err = decodeComponent(match[3])
	if err != nil {
		return Metadata{}, errmsg.Parse(relpath, fmt.Errorf("song: %w", err))
	}
	// Escapes of safe runes decode fine but would give a second path for
	// the same metadata.
	if canonical, err := Encode(m); err != nil || canonical != relpath {
		return Metadata{}, errmsg.Parse(relpath, errors.New("path is not in canonical form"))
	}
	return m, nil
}
