// Package playlists stores playlists as directories of integer-named
// symlinks.
package playlists

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/radian-software/fstunes/internal/errmsg"
	"github.com/radian-software/fstunes/internal/media"
)

// Reserved names.
const (
	MediaName = "media"
	QueueName = "queue"
)

// IsReserved reports whether name cannot be created or deleted by the user.
func IsReserved(name string) bool {
	return name == MediaName || name == QueueName
}

// Entry is one song reference of a playlist.
type Entry struct {
	Index int64
	// Target is the link target as stored, relative to the playlist directory.
	Target string
}

// Store is the playlists directory of a library.
type Store struct {
	dir string
}

// New returns a store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the playlists directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the directory of the named playlist.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, media.Escape(name))
}

// EntryPath returns the path of the entry with the given index.
func (s *Store) EntryPath(name string, index int64) string {
	return filepath.Join(s.Path(name), strconv.FormatInt(index, 10))
}

// Exists reports whether the named playlist directory exists.
func (s *Store) Exists(name string) bool {
	info, err := os.Stat(s.Path(name))
	return err == nil && info.IsDir()
}

// Names lists playlist names, sorted. Directories whose names do not decode
// are skipped.
func (s *Store) Names() ([]string, error) {
	des, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading playlists: %w", err)
	}
	var names []string
	for _, de := range des {
		if !de.IsDir() {
			continue
		}
		name, err := media.Unescape(de.Name())
		if err != nil {
			log.Debug().Str("dir", de.Name()).Err(err).Msg("skipping playlist directory")
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// ListEntries returns the entries of a playlist ordered by index. Entries
// that are not symlinks or whose names are not integers are skipped.
func (s *Store) ListEntries(name string) ([]Entry, error) {
	des, err := os.ReadDir(s.Path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errmsg.Conflict(errmsg.OpPlaylistList, []string{"playlist does not exist: " + name})
		}
		return nil, fmt.Errorf("reading playlist %q: %w", name, err)
	}
	var entries []Entry
	for _, de := range des {
		if de.Type()&fs.ModeSymlink == 0 {
			continue
		}
		index, err := strconv.ParseInt(de.Name(), 10, 64)
		if err != nil {
			continue
		}
		target, err := os.Readlink(filepath.Join(s.Path(name), de.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading entry %s of %q: %w", de.Name(), name, err)
		}
		entries = append(entries, Entry{Index: index, Target: target})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		switch {
		case a.Index < b.Index:
			return -1
		case a.Index > b.Index:
			return 1
		}
		return 0
	})
	return entries, nil
}

// checkNames reports reserved and duplicate names, and names whose
// existence differs from wantExist.
func (s *Store) checkNames(names []string, wantExist bool) []string {
	var conflicts []string
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		switch {
		case IsReserved(name):
			conflicts = append(conflicts, "reserved name: "+name)
		case seen[name]:
			conflicts = append(conflicts, "duplicate name: "+name)
		default:
			_, err := os.Lstat(s.Path(name))
			exists := err == nil
			if exists && !wantExist {
				conflicts = append(conflicts, "playlist already exists: "+name)
			} else if !exists && wantExist {
				conflicts = append(conflicts, "playlist does not exist: "+name)
			}
		}
		seen[name] = true
	}
	return conflicts
}

// Create creates every named playlist, or none if any name conflicts.
func (s *Store) Create(names []string) error {
	if conflicts := s.checkNames(names, false); len(conflicts) > 0 {
		return errmsg.Conflict(errmsg.OpPlaylistCreate, conflicts)
	}
	for _, name := range names {
		if err := os.Mkdir(s.Path(name), 0o755); err != nil {
			return fmt.Errorf("creating playlist %q: %w", name, err)
		}
		log.Debug().Str("playlist", name).Msg("created playlist")
	}
	return nil
}

// Count is the number of songs in one playlist.
type Count struct {
	Name  string
	Songs int
}

// ConfirmFunc is asked before playlists are deleted. defaultYes is true only
// when every playlist is empty.
type ConfirmFunc func(counts []Count, defaultYes bool) (bool, error)

// Delete removes every named playlist after confirmation. It returns
// errmsg.ErrDeclined if confirm answers no.
func (s *Store) Delete(names []string, confirm ConfirmFunc) error {
	if conflicts := s.checkNames(names, true); len(conflicts) > 0 {
		return errmsg.Conflict(errmsg.OpPlaylistDelete, conflicts)
	}
	counts := make([]Count, 0, len(names))
	total := 0
	for _, name := range names {
		entries, err := s.ListEntries(name)
		if err != nil {
			return err
		}
		counts = append(counts, Count{Name: name, Songs: len(entries)})
		total += len(entries)
	}
	ok, err := confirm(counts, total == 0)
	if err != nil {
		return err
	}
	if !ok {
		return errmsg.ErrDeclined
	}
	for _, name := range names {
		if err := os.RemoveAll(s.Path(name)); err != nil {
			return fmt.Errorf("deleting playlist %q: %w", name, err)
		}
		log.Debug().Str("playlist", name).Msg("deleted playlist")
	}
	return nil
}
