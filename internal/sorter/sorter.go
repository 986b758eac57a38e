// Package sorter orders songs by a sequence of (field, mode) keys.
package sorter

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/radian-software/fstunes/internal/errmsg"
	"github.com/radian-software/fstunes/internal/match"
)

// Mode is the ordering applied for one key.
type Mode int

const (
	Ascending Mode = iota
	Descending
	Shuffle
)

func (m Mode) String() string {
	switch m {
	case Ascending:
		return "sort"
	case Descending:
		return "reverse"
	case Shuffle:
		return "shuffle"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Key is one sort key.
type Key struct {
	Field match.Field
	Mode  Mode
}

// ParseKeys parses a comma-separated list of field names, all with mode m.
func ParseKeys(m Mode, arg string) ([]Key, error) {
	var keys []Key
	for name := range strings.SplitSeq(arg, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		f, err := match.ParseField(name)
		if err != nil {
			return nil, errmsg.Configuration(errmsg.OpParseSorter, "unsupported sort field %q", name)
		}
		keys = append(keys, Key{Field: f, Mode: m})
	}
	return keys, nil
}

// Sort orders songs in place, drawing shuffle salts from crypto/rand.
// Keys are applied as stable sorts from last to first, so the first key has
// the highest priority.
func Sort[S ~[]E, E match.Valuer](songs S, keys []Key) error {
	return SortWith(rand.Reader, songs, keys)
}

// SortWith is Sort with an explicit salt source.
func SortWith[S ~[]E, E match.Valuer](salts io.Reader, songs S, keys []Key) error {
	for i := len(keys) - 1; i >= 0; i-- {
		key := keys[i]
		switch key.Mode {
		case Ascending, Descending:
			sign := 1
			if key.Mode == Descending {
				sign = -1
			}
			slices.SortStableFunc(songs, func(a, b E) int {
				return sign * match.Compare(key.Field, a.Value(key.Field), b.Value(key.Field))
			})
		case Shuffle:
			if err := shuffle(salts, songs, key.Field); err != nil {
				return err
			}
		default:
			return errmsg.Configuration(errmsg.OpParseSorter, "unknown sort mode %d", key.Mode)
		}
	}
	return nil
}

type ranked[E any] struct {
	rank uint64
	item E
}

func shuffle[S ~[]E, E match.Valuer](salts io.Reader, songs S, f match.Field) error {
	ranks, err := shuffleRanks(salts, songs, f)
	if err != nil {
		return err
	}
	tmp := make([]ranked[E], len(songs))
	for i, s := range songs {
		tmp[i] = ranked[E]{rank: ranks[i], item: s}
	}
	slices.SortStableFunc(tmp, func(a, b ranked[E]) int {
		switch {
		case a.rank < b.rank:
			return -1
		case a.rank > b.rank:
			return 1
		}
		return 0
	})
	for i := range tmp {
		songs[i] = tmp[i].item
	}
	return nil
}

// shuffleRanks assigns every song the keyed hash of its value of f. Songs sharing a
// value share a rank.
func shuffleRanks[S ~[]E, E match.Valuer](src io.Reader, songs S, f match.Field) ([]uint64, error) {
	var salts [16]byte
	if _, err := io.ReadFull(src, salts[:]); err != nil {
		return nil, fmt.Errorf("reading shuffle salt: %w", err)
	}
	ranks := make([]uint64, len(songs))
	cache := make(map[match.Value]uint64)
	for i, song := range songs {
		v := song.Value(f)
		if r, ok := cache[v]; ok {
			ranks[i] = r
			continue
		}
		r, err := rank(salts[:8], salts[8:], f, v)
		if err != nil {
			return nil, err
		}
		cache[v] = r
		ranks[i] = r
	}
	return ranks, nil
}

func rank(salt1, salt2 []byte, f match.Field, v match.Value) (uint64, error) {
	h, err := blake2b.New256(salt1)
	if err != nil {
		return 0, fmt.Errorf("creating shuffle hash: %w", err)
	}
	if v.Present {
		h.Write([]byte{1})
		h.Write([]byte(v.Text(f)))
	} else {
		h.Write([]byte{0})
	}
	h.Write(salt2)
	return binary.BigEndian.Uint64(h.Sum(nil)[:8]), nil
}
