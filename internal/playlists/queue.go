package playlists

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/radian-software/fstunes/internal/errmsg"
)

// currentName is the queue entry holding the current marker.
const currentName = "_current"

// CurrentPath returns the path of the queue's current marker.
func (s *Store) CurrentPath() string {
	return filepath.Join(s.Path(QueueName), currentName)
}

// Current returns the queue's current index. Without a marker it is the
// smallest queue index, or 0 for an empty queue.
func (s *Store) Current() (int64, error) {
	target, err := os.Readlink(s.CurrentPath())
	if err == nil {
		current, err := strconv.ParseInt(filepath.Base(target), 10, 64)
		if err != nil {
			return 0, errmsg.Parse(s.CurrentPath(), fmt.Errorf("marker target %q is not an index", target))
		}
		return current, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return 0, fmt.Errorf("reading current marker: %w", err)
	}
	entries, err := s.ListEntries(QueueName)
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, nil
	}
	return entries[0].Index, nil
}

// SetCurrent points the current marker at index. The marker targets the
// entry's name whether or not the entry exists.
func (s *Store) SetCurrent(index int64) error {
	path := s.CurrentPath()
	tmp := path + ".tmp"
	_ = os.Remove(tmp)
	if err := os.Symlink(strconv.FormatInt(index, 10), tmp); err != nil {
		return fmt.Errorf("writing current marker: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("writing current marker: %w", err)
	}
	return nil
}
