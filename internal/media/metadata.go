// Package media maps song metadata to and from canonical relative paths in
// the media tree. The mapping is a bijection: every representable record has
// exactly one path and every path produced by Encode decodes back to the same
// record.
package media

import (
	"errors"
	"fmt"
	"strings"
)

// Metadata describes one song. Nil pointers mean the value is absent, which
// is distinct from an empty string or zero.
type Metadata struct {
	Artist    *string
	Album     *string
	Disk      *int
	Track     *int
	Song      *string
	Extension string // includes the leading dot, or empty
}

// String returns a pointer to s.
func String(s string) *string {
	return &s
}

// Int returns a pointer to n.
func Int(n int) *int {
	return &n
}

// Validate reports whether m can be encoded.
func (m Metadata) Validate() error {
	var problems []string
	if m.Disk != nil && *m.Disk < 0 {
		problems = append(problems, fmt.Sprintf("negative disk number %d", *m.Disk))
	}
	if m.Track != nil && *m.Track < 0 {
		problems = append(problems, fmt.Sprintf("negative track number %d", *m.Track))
	}
	if m.Extension != "" {
		if m.Extension[0] != '.' {
			problems = append(problems, fmt.Sprintf("extension %q does not start with a dot", m.Extension))
		}
		if strings.ContainsRune(m.Extension, '/') {
			problems = append(problems, fmt.Sprintf("extension %q contains a path separator", m.Extension))
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// Equal reports whether m and o describe the same record.
func (m Metadata) Equal(o Metadata) bool {
	return equalString(m.Artist, o.Artist) &&
		equalString(m.Album, o.Album) &&
		equalInt(m.Disk, o.Disk) &&
		equalInt(m.Track, o.Track) &&
		equalString(m.Song, o.Song) &&
		m.Extension == o.Extension
}

func equalString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
