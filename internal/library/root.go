// Package library locates a library on disk and enumerates its songs.
package library

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/radian-software/fstunes/internal/errmsg"
	"github.com/radian-software/fstunes/internal/media"
	"github.com/radian-software/fstunes/internal/playlists"
)

// Root is an opened library directory.
type Root struct {
	Dir       string
	Playlists *playlists.Store
}

// Open validates dir and creates the media, playlists and queue directories
// if they are missing.
func Open(dir string) (*Root, error) {
	if dir == "" {
		return nil, errmsg.Configuration(errmsg.OpConfigLoad, "library home is not set (FSTUNES_HOME)")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errmsg.Configuration(errmsg.OpConfigLoad, "invalid library home %q: %v", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return nil, errmsg.Configuration(errmsg.OpConfigLoad, "library home %q is not an existing directory", dir)
	}

	r := &Root{Dir: abs, Playlists: playlists.New(filepath.Join(abs, "playlists"))}
	for _, d := range []string{r.MediaDir(), r.Playlists.Dir(), r.Playlists.Path(playlists.QueueName)} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", d, err)
		}
	}
	return r, nil
}

// MediaDir returns the root of the canonical tree.
func (r *Root) MediaDir() string {
	return filepath.Join(r.Dir, playlists.MediaName)
}

// CanonicalPath returns the absolute canonical path of m.
func (r *Root) CanonicalPath(m media.Metadata) (string, error) {
	rel, err := media.Encode(m)
	if err != nil {
		return "", err
	}
	return filepath.Join(r.MediaDir(), filepath.FromSlash(rel)), nil
}
