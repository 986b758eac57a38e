package app

import (
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize/english"
	"github.com/rs/zerolog/log"

	"github.com/radian-software/fstunes/internal/errmsg"
	"github.com/radian-software/fstunes/internal/library"
	"github.com/radian-software/fstunes/internal/playlist"
)

// DeleteMedia deletes the canonical files of the selected songs and removes
// every playlist entry that references them.
func (a *App) DeleteMedia(sel Selection, yes bool) error {
	songs, err := a.songs(sel)
	if err != nil {
		return err
	}
	songs = uniqueFiles(songs)
	if len(songs) == 0 {
		a.printf("no songs matched\n")
		return nil
	}
	doomed := make(map[string]bool, len(songs))
	for _, s := range songs {
		doomed[s.Path] = true
	}

	plans, err := a.planReferenceRemovals(doomed)
	if err != nil {
		return err
	}

	a.printf("%s\n", a.Styles.Header.Render("delete "+english.Plural(len(songs), "media file", "")+":"))
	for _, s := range songs {
		a.printf("%s\n", a.Styles.Removed.Render("- "+a.label(s)))
	}
	entries := 0
	for _, rp := range plans {
		a.presentRemove(rp)
		entries += len(rp.Deletes)
	}
	if err := a.confirm("Apply these changes?", false, yes); err != nil {
		return err
	}

	for _, rp := range plans {
		if err := playlist.ApplyRemove(a.Root.Playlists, rp); err != nil {
			return err
		}
	}
	for _, s := range songs {
		if err := os.Remove(s.Path); err != nil {
			return errmsg.PartialMutation(errmsg.OpMediaDelete, "delete media file", err, s.Path)
		}
		log.Debug().Str("path", s.Path).Msg("delete media file")
		if err := pruneEmptyDirs(a.Root.MediaDir(), filepath.Dir(s.Path)); err != nil {
			return errmsg.PartialMutation(errmsg.OpMediaDelete, "prune empty directory", err, filepath.Dir(s.Path))
		}
	}
	a.printf("deleted %s and removed %s\n", english.Plural(len(songs), "media file", ""),
		english.Plural(entries, "playlist entry", "playlist entries"))
	return nil
}

// planReferenceRemovals plans the removal of every playlist entry whose
// target is in paths.
func (a *App) planReferenceRemovals(paths map[string]bool) ([]*playlist.RemovePlan, error) {
	names, err := a.Root.Playlists.Names()
	if err != nil {
		return nil, err
	}
	var plans []*playlist.RemovePlan
	for _, name := range names {
		existing, current, err := a.playlistState(name)
		if err != nil {
			return nil, err
		}
		var remove []library.Song
		for _, s := range existing {
			if paths[s.Path] {
				remove = append(remove, s)
			}
		}
		if len(remove) > 0 {
			plans = append(plans, playlist.PlanRemove(name, existing, remove, current))
		}
	}
	return plans, nil
}
