// Package match selects songs by per-field predicates.
package match

import (
	"strconv"

	"github.com/radian-software/fstunes/internal/errmsg"
)

// Field identifies a song attribute that can be matched, sorted or listed.
type Field int

// Supported fields. From and Index are pseudo-fields describing where a song
// was found rather than the song itself.
const (
	FieldArtist Field = iota
	FieldAlbum
	FieldDisk
	FieldTrack
	FieldSong
	FieldExtension
	FieldFrom
	FieldIndex
)

var fieldNames = [...]string{
	FieldArtist:    "artist",
	FieldAlbum:     "album",
	FieldDisk:      "disk",
	FieldTrack:     "track",
	FieldSong:      "song",
	FieldExtension: "extension",
	FieldFrom:      "from",
	FieldIndex:     "index",
}

// Fields returns every field in display order.
func Fields() []Field {
	fields := make([]Field, len(fieldNames))
	for i := range fieldNames {
		fields[i] = Field(i)
	}
	return fields
}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return "field(" + strconv.Itoa(int(f)) + ")"
	}
	return fieldNames[f]
}

// IsInteger reports whether values of f are integers.
func (f Field) IsInteger() bool {
	return f == FieldDisk || f == FieldTrack || f == FieldIndex
}

// ParseField resolves a field name.
func ParseField(name string) (Field, error) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), nil
		}
	}
	return 0, errmsg.Configuration(errmsg.OpParseMatcher, "unsupported field %q", name)
}

// Value is the value of one field for one song.
type Value struct {
	Present bool
	Str     string
	Int     int64
}

// StringValue wraps an optional string.
func StringValue(s *string) Value {
	if s == nil {
		return Value{}
	}
	return Value{Present: true, Str: *s}
}

// IntValue wraps an optional int.
func IntValue(n *int) Value {
	if n == nil {
		return Value{}
	}
	return Value{Present: true, Int: int64(*n)}
}

// Int64Value wraps an optional int64.
func Int64Value(n *int64) Value {
	if n == nil {
		return Value{}
	}
	return Value{Present: true, Int: *n}
}

// Text is the value as shown to the user; absent values are empty.
func (v Value) Text(f Field) string {
	if !v.Present {
		return ""
	}
	if f.IsInteger() {
		return strconv.FormatInt(v.Int, 10)
	}
	return v.Str
}

// Compare orders two values of field f. Absent values sort first.
func Compare(f Field, a, b Value) int {
	switch {
	case !a.Present && !b.Present:
		return 0
	case !a.Present:
		return -1
	case !b.Present:
		return 1
	}
	if f.IsInteger() {
		switch {
		case a.Int < b.Int:
			return -1
		case a.Int > b.Int:
			return 1
		}
		return 0
	}
	switch {
	case a.Str < b.Str:
		return -1
	case a.Str > b.Str:
		return 1
	}
	return 0
}

// Valuer exposes the field values of a song.
type Valuer interface {
	Value(f Field) Value
}
