package library

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/radian-software/fstunes/internal/errmsg"
	"github.com/radian-software/fstunes/internal/match"
	"github.com/radian-software/fstunes/internal/media"
	"github.com/radian-software/fstunes/internal/playlists"
)

// MediaSongs walks the canonical tree. A file whose path does not decode
// aborts the walk with a parse error. Dot files are skipped: no canonical
// component starts with a dot.
func (r *Root) MediaSongs() ([]Song, error) {
	var songs []Song
	err := filepath.WalkDir(r.MediaDir(), func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		hidden := path != r.MediaDir() && strings.HasPrefix(d.Name(), ".")
		if d.IsDir() {
			if hidden {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}
		rel, err := filepath.Rel(r.MediaDir(), path)
		if err != nil {
			return err
		}
		m, err := media.Decode(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		songs = append(songs, Song{Metadata: m, Path: path, Source: match.MediaSource})
		return nil
	})
	if err != nil {
		if errmsg.Is(err, errmsg.KindParse) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning media: %w", err)
	}
	return songs, nil
}

// PlaylistSongs resolves every entry of a playlist to its canonical song.
func (r *Root) PlaylistSongs(name string) ([]Song, error) {
	entries, err := r.Playlists.ListEntries(name)
	if err != nil {
		return nil, err
	}
	var offset int64
	if name == playlists.QueueName {
		if offset, err = r.Playlists.Current(); err != nil {
			return nil, err
		}
	}
	songs := make([]Song, 0, len(entries))
	for _, e := range entries {
		path, m, err := r.resolve(name, e)
		if err != nil {
			return nil, err
		}
		index := e.Index - offset
		songs = append(songs, Song{
			Metadata: m,
			Path:     path,
			Source:   name,
			Entry:    e.Index,
			Index:    &index,
		})
	}
	return songs, nil
}

// EntryTarget returns the absolute, cleaned path an entry of playlist name
// points to.
func (r *Root) EntryTarget(name string, e playlists.Entry) string {
	if filepath.IsAbs(e.Target) {
		return filepath.Clean(e.Target)
	}
	return filepath.Join(r.Playlists.Path(name), e.Target)
}

// resolve maps an entry's link target back into the canonical tree.
func (r *Root) resolve(name string, e playlists.Entry) (string, media.Metadata, error) {
	entryPath := r.Playlists.EntryPath(name, e.Index)
	target := r.EntryTarget(name, e)
	rel, err := filepath.Rel(r.MediaDir(), target)
	if err != nil || rel == "." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || rel == ".." {
		return "", media.Metadata{}, errmsg.Parse(entryPath, fmt.Errorf("target %q is outside the media tree", e.Target))
	}
	m, err := media.Decode(filepath.ToSlash(rel))
	if err != nil {
		return "", media.Metadata{}, errmsg.Parse(entryPath, err)
	}
	return target, m, nil
}

// CollectMatchedSongs returns every song accepted by m: the canonical tree
// when the media source is accepted, followed by the entries of every
// accepted playlist in name order.
func CollectMatchedSongs(r *Root, m *match.Matchers) ([]Song, error) {
	names, err := r.Playlists.Names()
	if err != nil {
		return nil, err
	}
	var sources []string
	if m.AcceptsSource(match.MediaSource) {
		sources = append(sources, match.MediaSource)
	}
	for _, name := range names {
		if m.AcceptsSource(name) {
			sources = append(sources, name)
		}
	}
	if len(sources) == 0 {
		return nil, errmsg.Configuration(errmsg.OpParseMatcher, "no source selected by the from matcher")
	}

	var matched []Song
	for _, src := range sources {
		var songs []Song
		if src == match.MediaSource {
			songs, err = r.MediaSongs()
		} else {
			songs, err = r.PlaylistSongs(src)
		}
		if err != nil {
			return nil, err
		}
		for _, s := range songs {
			if m.Match(s) {
				matched = append(matched, s)
			}
		}
	}
	return matched, nil
}
