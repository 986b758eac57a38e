package playlist

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/radian-software/fstunes/internal/errmsg"
	"github.com/radian-software/fstunes/internal/playlists"
)

// ApplyInsert performs an insertion plan. The target playlist must exist.
// A failure part way leaves the playlist partially renumbered.
func ApplyInsert(store *playlists.Store, plan *InsertPlan) error {
	op := errmsg.OpPlaylistInsert
	if !store.Exists(plan.Playlist) {
		return errmsg.Conflict(op, []string{"playlist does not exist: " + plan.Playlist})
	}
	dir := store.Path(plan.Playlist)

	for _, mv := range plan.Renames {
		if err := renameEntry(store, op, plan.Playlist, mv); err != nil {
			return err
		}
	}
	for i, song := range plan.Songs {
		index := plan.Start + int64(i)
		path := store.EntryPath(plan.Playlist, index)
		target, err := filepath.Rel(dir, song.Path)
		if err != nil {
			return errmsg.PartialMutation(op, "compute link target", err, song.Path)
		}
		if err := os.Symlink(target, path); err != nil {
			return errmsg.PartialMutation(op, "create entry", err, path)
		}
		log.Debug().Str("playlist", plan.Playlist).Int64("index", index).Str("target", target).Msg("create entry")
	}
	for _, song := range plan.Prunes {
		path := store.EntryPath(plan.Playlist, song.Entry)
		if err := os.Remove(path); err != nil {
			return errmsg.PartialMutation(op, "prune entry", err, path)
		}
		log.Debug().Str("playlist", plan.Playlist).Int64("index", song.Entry).Msg("prune entry")
	}
	if plan.Queue {
		if err := store.SetCurrent(plan.NewCurrent); err != nil {
			return errmsg.PartialMutation(op, "move current marker", err, store.CurrentPath())
		}
	}
	return nil
}

// ApplyRemove performs a removal plan.
func ApplyRemove(store *playlists.Store, plan *RemovePlan) error {
	op := errmsg.OpPlaylistRemove
	for _, song := range plan.Deletes {
		path := store.EntryPath(plan.Playlist, song.Entry)
		if err := os.Remove(path); err != nil {
			return errmsg.PartialMutation(op, "delete entry", err, path)
		}
		log.Debug().Str("playlist", plan.Playlist).Int64("index", song.Entry).Msg("delete entry")
	}
	for _, mv := range plan.Renames {
		if err := renameEntry(store, op, plan.Playlist, mv); err != nil {
			return err
		}
	}
	if plan.Queue && (len(plan.Deletes) > 0 || plan.NewCurrent != plan.Current) {
		if err := store.SetCurrent(plan.NewCurrent); err != nil {
			return errmsg.PartialMutation(op, "move current marker", err, store.CurrentPath())
		}
	}
	return nil
}

// renameEntry moves one entry, refusing to replace an existing one.
func renameEntry(store *playlists.Store, op errmsg.Op, playlist string, mv Move) error {
	from := store.EntryPath(playlist, mv.From)
	to := store.EntryPath(playlist, mv.To)
	if _, err := os.Lstat(to); err == nil {
		return errmsg.PartialMutation(op, "rename entry", fmt.Errorf("entry %d already exists", mv.To), from, to)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return errmsg.PartialMutation(op, "rename entry", err, from, to)
	}
	if err := os.Rename(from, to); err != nil {
		return errmsg.PartialMutation(op, "rename entry", err, from, to)
	}
	log.Debug().Str("playlist", playlist).Int64("from", mv.From).Int64("to", mv.To).Msg("rename entry")
	return nil
}
