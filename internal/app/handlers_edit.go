package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/dustin/go-humanize/english"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/radian-software/fstunes/internal/errmsg"
	"github.com/radian-software/fstunes/internal/library"
	"github.com/radian-software/fstunes/internal/match"
	"github.com/radian-software/fstunes/internal/media"
)

// pathKey identifies a song in the edit buffer.
const pathKey = "path"

const bufferHeader = `# Edit the metadata below, save and quit.
# Each record is identified by its path; ~ marks an absent value.
# Records or fields you delete are left unchanged.
`

// EditOptions configures Edit.
type EditOptions struct {
	Fields []match.Field
	// Command is the editor shell command. Empty uses the configured editor.
	Command string
	Yes     bool
}

// fileMove is one canonical file renamed by an edit.
type fileMove struct {
	song library.Song
	from string
	dst  string
}

// entryRetarget is a playlist entry pointed at a moved file.
type entryRetarget struct {
	playlist string
	index    int64
	target   string
}

// Edit lets the user change the metadata of the selected songs in an
// editor, then moves their canonical files and repoints every playlist
// entry that referenced them. File contents are never rewritten.
func (a *App) Edit(ctx context.Context, sel Selection, opts EditOptions) error {
	fields := opts.Fields
	if len(fields) == 0 {
		fields = metadataFields
	}
	for _, f := range fields {
		if !slices.Contains(metadataFields, f) {
			return errmsg.Configuration(errmsg.OpMediaEdit, "field %s cannot be edited", f)
		}
	}

	songs, err := a.songs(sel)
	if err != nil {
		return err
	}
	songs = uniqueFiles(songs)
	if len(songs) == 0 {
		a.printf("no songs matched\n")
		return nil
	}

	buf, err := a.encodeBuffer(songs, fields)
	if err != nil {
		return err
	}
	command := opts.Command
	if command == "" && a.Config != nil {
		command = a.Config.EditorCommand()
	}
	if command == "" {
		command = "vi"
	}
	edited, err := a.Editor.Edit(ctx, command, buf)
	if err != nil {
		return err
	}

	moves, err := a.parseBuffer(edited, songs, fields)
	if err != nil {
		return err
	}
	if len(moves) == 0 {
		a.printf("no changes\n")
		return nil
	}
	if err := a.checkMoves(moves); err != nil {
		return err
	}
	retargets, err := a.planRetargets(moves)
	if err != nil {
		return err
	}

	a.printf("%s\n", a.Styles.Header.Render("move "+english.Plural(len(moves), "media file", "")+":"))
	for _, mv := range moves {
		a.printf("  %s\n  %s\n", a.Styles.Removed.Render("- "+a.label(mv.song)),
			a.Styles.Added.Render("+ "+a.relative(mv.dst)))
	}
	a.printf("%s\n", a.Styles.Moved.Render("retarget "+english.Plural(len(retargets), "playlist entry", "playlist entries")))
	if err := a.confirm("Apply these changes?", true, opts.Yes); err != nil {
		return err
	}

	if err := a.applyMoves(moves); err != nil {
		return err
	}
	if err := a.applyRetargets(retargets); err != nil {
		return err
	}
	a.printf("edited %s and retargeted %s\n", english.Plural(len(moves), "song", ""),
		english.Plural(len(retargets), "playlist entry", "playlist entries"))
	return nil
}

func (a *App) relative(path string) string {
	rel, err := filepath.Rel(a.Root.MediaDir(), path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// encodeBuffer renders songs as a YAML sequence of records holding the path
// and the editable fields.
func (a *App) encodeBuffer(songs []library.Song, fields []match.Field) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.SequenceNode}
	for _, s := range songs {
		rec := &yaml.Node{Kind: yaml.MappingNode}
		if err := addPair(rec, pathKey, a.relative(s.Path)); err != nil {
			return nil, err
		}
		for _, f := range fields {
			if err := addPair(rec, f.String(), fieldValue(s.Metadata, f)); err != nil {
				return nil, err
			}
		}
		doc.Content = append(doc.Content, rec)
	}

	var b bytes.Buffer
	b.WriteString(bufferHeader)
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding edit buffer: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding edit buffer: %w", err)
	}
	return b.Bytes(), nil
}

func addPair(m *yaml.Node, key string, value any) error {
	var k, v yaml.Node
	k.SetString(key)
	if err := v.Encode(value); err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	m.Content = append(m.Content, &k, &v)
	return nil
}

func fieldValue(m media.Metadata, f match.Field) any {
	switch f {
	case match.FieldArtist:
		return m.Artist
	case match.FieldAlbum:
		return m.Album
	case match.FieldDisk:
		return m.Disk
	case match.FieldTrack:
		return m.Track
	case match.FieldSong:
		return m.Song
	case match.FieldExtension:
		return m.Extension
	}
	return nil
}

// parseBuffer applies the edited records to the songs they name and returns
// a move for every song whose metadata changed.
func (a *App) parseBuffer(buf []byte, songs []library.Song, fields []match.Field) ([]fileMove, error) {
	var records []map[string]yaml.Node
	if err := yaml.Unmarshal(buf, &records); err != nil {
		return nil, errmsg.Configuration(errmsg.OpMediaEdit, "invalid edit buffer: %v", err)
	}

	byPath := make(map[string]int, len(songs))
	for i, s := range songs {
		byPath[a.relative(s.Path)] = i
	}
	seen := make(map[string]bool, len(records))
	var moves []fileMove
	for i, rec := range records {
		node, ok := rec[pathKey]
		if !ok {
			return nil, errmsg.Configuration(errmsg.OpMediaEdit, "record %d has no %s", i+1, pathKey)
		}
		rel := node.Value
		idx, ok := byPath[rel]
		if !ok {
			return nil, errmsg.Configuration(errmsg.OpMediaEdit, "record %d: unknown path %q", i+1, rel)
		}
		if seen[rel] {
			return nil, errmsg.Configuration(errmsg.OpMediaEdit, "record %d: duplicate path %q", i+1, rel)
		}
		seen[rel] = true

		song := songs[idx]
		m := song.Metadata
		for key, value := range rec {
			if key == pathKey {
				continue
			}
			f, err := match.ParseField(key)
			if err != nil || !slices.Contains(fields, f) {
				return nil, errmsg.Configuration(errmsg.OpMediaEdit, "record %d: field %q cannot be edited", i+1, key)
			}
			if err := setField(&m, f, &value); err != nil {
				return nil, errmsg.Configuration(errmsg.OpMediaEdit, "record %d: %v", i+1, err)
			}
		}
		if err := m.Validate(); err != nil {
			return nil, errmsg.Configuration(errmsg.OpMediaEdit, "record %d: %v", i+1, err)
		}
		if m.Equal(song.Metadata) {
			continue
		}
		dst, err := a.Root.CanonicalPath(m)
		if err != nil {
			return nil, errmsg.Configuration(errmsg.OpMediaEdit, "record %d: %v", i+1, err)
		}
		moves = append(moves, fileMove{song: song, from: song.Path, dst: dst})
	}
	return moves, nil
}

// setField stores an edited YAML value into one field of m.
func setField(m *media.Metadata, f match.Field, node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%s must be a single value", f)
	}
	null := node.ShortTag() == "!!null"
	switch f {
	case match.FieldArtist, match.FieldAlbum, match.FieldSong:
		var s *string
		if !null {
			s = media.String(node.Value)
		}
		switch f {
		case match.FieldArtist:
			m.Artist = s
		case match.FieldAlbum:
			m.Album = s
		default:
			m.Song = s
		}
	case match.FieldDisk, match.FieldTrack:
		var n *int
		if !null {
			var v int
			if err := node.Decode(&v); err != nil {
				return fmt.Errorf("%s: %q is not an integer", f, node.Value)
			}
			n = media.Int(v)
		}
		if f == match.FieldDisk {
			m.Disk = n
		} else {
			m.Track = n
		}
	case match.FieldExtension:
		m.Extension = ""
		if !null {
			m.Extension = node.Value
		}
	}
	return nil
}

// checkMoves rejects edits that would make two songs share a canonical
// path or overwrite an existing file.
func (a *App) checkMoves(moves []fileMove) error {
	var conflicts []string
	claimed := make(map[string]string, len(moves))
	for _, mv := range moves {
		rel := a.relative(mv.dst)
		if other, ok := claimed[mv.dst]; ok {
			conflicts = append(conflicts, fmt.Sprintf("%s and %s would both become %s", other, a.label(mv.song), rel))
			continue
		}
		claimed[mv.dst] = a.label(mv.song)
		if _, err := os.Lstat(mv.dst); err == nil {
			conflicts = append(conflicts, "media file already exists: "+rel)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", mv.dst, err)
		}
	}
	if len(conflicts) > 0 {
		return errmsg.Conflict(errmsg.OpMediaEdit, conflicts)
	}
	return nil
}

// planRetargets finds every playlist entry pointing at a moved file.
func (a *App) planRetargets(moves []fileMove) ([]entryRetarget, error) {
	dst := make(map[string]string, len(moves))
	for _, mv := range moves {
		dst[mv.from] = mv.dst
	}
	names, err := a.Root.Playlists.Names()
	if err != nil {
		return nil, err
	}
	var out []entryRetarget
	for _, name := range names {
		entries, err := a.Root.Playlists.ListEntries(name)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if to, ok := dst[a.Root.EntryTarget(name, e)]; ok {
				out = append(out, entryRetarget{playlist: name, index: e.Index, target: to})
			}
		}
	}
	return out, nil
}

func (a *App) applyMoves(moves []fileMove) error {
	op := errmsg.OpMediaEdit
	for _, mv := range moves {
		if err := os.MkdirAll(filepath.Dir(mv.dst), 0o755); err != nil {
			return errmsg.PartialMutation(op, "create directory", err, filepath.Dir(mv.dst))
		}
		if _, err := os.Lstat(mv.dst); err == nil {
			return errmsg.PartialMutation(op, "move media file", fs.ErrExist, mv.from, mv.dst)
		}
		if err := os.Rename(mv.from, mv.dst); err != nil {
			return errmsg.PartialMutation(op, "move media file", err, mv.from, mv.dst)
		}
		log.Debug().Str("from", mv.from).Str("to", mv.dst).Msg("move media file")
		if err := pruneEmptyDirs(a.Root.MediaDir(), filepath.Dir(mv.from)); err != nil {
			return errmsg.PartialMutation(op, "prune empty directory", err, filepath.Dir(mv.from))
		}
	}
	return nil
}

// applyRetargets replaces each entry's link through a temporary link so an
// entry is never missing.
func (a *App) applyRetargets(retargets []entryRetarget) error {
	op := errmsg.OpMediaEdit
	store := a.Root.Playlists
	for _, rt := range retargets {
		path := store.EntryPath(rt.playlist, rt.index)
		target, err := filepath.Rel(store.Path(rt.playlist), rt.target)
		if err != nil {
			return errmsg.PartialMutation(op, "retarget entry", err, path)
		}
		tmp := path + ".tmp"
		_ = os.Remove(tmp)
		if err := os.Symlink(target, tmp); err != nil {
			return errmsg.PartialMutation(op, "retarget entry", err, path)
		}
		if err := os.Rename(tmp, path); err != nil {
			_ = os.Remove(tmp)
			return errmsg.PartialMutation(op, "retarget entry", err, path)
		}
		log.Debug().Str("playlist", rt.playlist).Int64("index", rt.index).Str("target", target).Msg("retarget entry")
	}
	return nil
}
