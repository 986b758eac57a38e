// Package tags reads song metadata from MP3, FLAC, Opus, Vorbis and M4A
// files.
package tags

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/radian-software/fstunes/internal/media"
)

// File extensions supported by the tags package.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtOPUS = ".opus"
	ExtOGG  = ".ogg"
	ExtOGA  = ".oga"
	ExtM4A  = ".m4a"
	ExtMP4  = ".mp4"
)

// ErrUnsupported is returned for files that are not music files.
var ErrUnsupported = errors.New("unsupported file type")

// Tag holds the tag fields a library path is built from. Zero numbers and
// empty strings mean the tag is missing.
type Tag struct {
	Path        string
	Title       string
	Artist      string
	AlbumArtist string
	Album       string
	TrackNumber int
	DiscNumber  int
}

// Metadata converts t into a song record. The artist falls back to the
// album artist.
func (t *Tag) Metadata() media.Metadata {
	m := media.Metadata{Extension: Extension(t.Path)}
	artist := strings.TrimSpace(t.Artist)
	if artist == "" {
		artist = strings.TrimSpace(t.AlbumArtist)
	}
	if artist != "" {
		m.Artist = &artist
	}
	if album := strings.TrimSpace(t.Album); album != "" {
		m.Album = &album
	}
	if title := strings.TrimSpace(t.Title); title != "" {
		m.Song = &title
	}
	if t.DiscNumber > 0 {
		m.Disk = media.Int(t.DiscNumber)
	}
	if t.TrackNumber > 0 {
		m.Track = media.Int(t.TrackNumber)
	}
	return m
}

// Extension returns the lowercased extension of path.
func Extension(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// IsMusicFile returns true if the path has a supported music file extension.
func IsMusicFile(path string) bool {
	switch Extension(path) {
	case ExtMP3, ExtFLAC, ExtOPUS, ExtOGG, ExtOGA, ExtM4A, ExtMP4:
		return true
	}
	return false
}

// taglibTags wraps a taglib result map with helper methods.
type taglibTags map[string][]string

// get returns the first value for any of the given keys, or empty string if not found.
func (t taglibTags) get(keys ...string) string {
	for _, key := range keys {
		if values, ok := t[key]; ok && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// number parses the first value of key, which may be "N" or "N/M".
func (t taglibTags) number(key string) int {
	n, _ := parseNumberPair(t.get(key))
	return n
}

// parseNumberPair parses a track or disc number like "5" or "5/10".
func parseNumberPair(s string) (num, total int) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0
	}
	parts := strings.SplitN(s, "/", 2)
	num, _ = strconv.Atoi(parts[0])
	if len(parts) == 2 {
		total, _ = strconv.Atoi(parts[1])
	}
	return num, total
}
