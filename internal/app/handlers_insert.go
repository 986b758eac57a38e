package app

import (
	"github.com/dustin/go-humanize/english"

	"github.com/radian-software/fstunes/internal/errmsg"
	"github.com/radian-software/fstunes/internal/library"
	"github.com/radian-software/fstunes/internal/playlist"
	"github.com/radian-software/fstunes/internal/playlists"
)

// InsertOptions configures Insert.
type InsertOptions struct {
	Playlist string
	// Index is relative to the current song for the queue.
	Index  int64
	Before bool
	// Transfer removes the selected songs from the playlists they were
	// selected from before inserting them.
	Transfer bool
	Yes      bool
}

// Insert adds the selected songs to a playlist at an index, shifting the
// entries at and after it.
func (a *App) Insert(sel Selection, opts InsertOptions) error {
	if !a.Root.Playlists.Exists(opts.Playlist) {
		return errmsg.Conflict(errmsg.OpPlaylistInsert, []string{"playlist does not exist: " + opts.Playlist})
	}
	songs, err := a.songs(sel)
	if err != nil {
		return err
	}
	if len(songs) == 0 {
		a.printf("no songs matched\n")
		return nil
	}

	var removals []*playlist.RemovePlan
	if opts.Transfer {
		if removals, err = a.planRemovals(songs); err != nil {
			return err
		}
	}
	existing, current, err := a.playlistState(opts.Playlist)
	if err != nil {
		return err
	}
	for _, rp := range removals {
		if rp.Playlist == opts.Playlist {
			existing = survivors(existing, rp)
			current = rp.NewCurrent
		}
	}

	plan, err := playlist.PlanInsert(existing, songs, playlist.InsertOptions{
		Playlist:    opts.Playlist,
		Index:       opts.Index,
		Before:      opts.Before,
		Current:     current,
		QueueLength: a.queueLength(),
	})
	if err != nil {
		return err
	}

	for _, rp := range removals {
		a.presentRemove(rp)
	}
	a.presentInsert(plan)
	if err := a.confirm("Apply these changes?", false, opts.Yes); err != nil {
		return err
	}

	for _, rp := range removals {
		if err := playlist.ApplyRemove(a.Root.Playlists, rp); err != nil {
			return err
		}
	}
	if err := playlist.ApplyInsert(a.Root.Playlists, plan); err != nil {
		return err
	}
	a.printf("inserted %s into %s\n", english.Plural(len(songs), "song", ""), opts.Playlist)
	return nil
}

// Remove deletes the selected playlist entries and closes the gaps they
// leave. Songs selected from the media tree are ignored.
func (a *App) Remove(sel Selection, yes bool) error {
	songs, err := a.songs(sel)
	if err != nil {
		return err
	}
	plans, err := a.planRemovals(songs)
	if err != nil {
		return err
	}
	if len(plans) == 0 {
		a.printf("no playlist entries matched\n")
		return nil
	}

	removed := 0
	for _, rp := range plans {
		a.presentRemove(rp)
		removed += len(rp.Deletes)
	}
	if err := a.confirm("Apply these changes?", false, yes); err != nil {
		return err
	}
	for _, rp := range plans {
		if err := playlist.ApplyRemove(a.Root.Playlists, rp); err != nil {
			return err
		}
	}
	a.printf("removed %s from %s\n",
		english.Plural(removed, "song", ""), english.Plural(len(plans), "playlist", ""))
	return nil
}

// playlistState returns a playlist's entries and, for the queue, its
// current marker.
func (a *App) playlistState(name string) ([]library.Song, int64, error) {
	existing, err := a.Root.PlaylistSongs(name)
	if err != nil {
		return nil, 0, err
	}
	var current int64
	if name == playlists.QueueName {
		if current, err = a.Root.Playlists.Current(); err != nil {
			return nil, 0, err
		}
	}
	return existing, current, nil
}

// planRemovals groups the playlist songs among songs by playlist and plans
// one removal per playlist, in the order the playlists first appear.
func (a *App) planRemovals(songs []library.Song) ([]*playlist.RemovePlan, error) {
	groups := make(map[string][]library.Song)
	var order []string
	for _, s := range songs {
		if !s.FromPlaylist() {
			continue
		}
		if _, ok := groups[s.Source]; !ok {
			order = append(order, s.Source)
		}
		groups[s.Source] = append(groups[s.Source], s)
	}

	plans := make([]*playlist.RemovePlan, 0, len(order))
	for _, name := range order {
		existing, current, err := a.playlistState(name)
		if err != nil {
			return nil, err
		}
		plans = append(plans, playlist.PlanRemove(name, existing, groups[name], current))
	}
	return plans, nil
}

// survivors returns the entries of existing left by a removal plan, carrying
// their new indices.
func survivors(existing []library.Song, plan *playlist.RemovePlan) []library.Song {
	deleted := make(map[int64]bool, len(plan.Deletes))
	for _, s := range plan.Deletes {
		deleted[s.Entry] = true
	}
	moved := make(map[int64]int64, len(plan.Renames))
	for _, mv := range plan.Renames {
		moved[mv.From] = mv.To
	}
	out := make([]library.Song, 0, len(existing)-len(plan.Deletes))
	for _, s := range existing {
		if deleted[s.Entry] {
			continue
		}
		if to, ok := moved[s.Entry]; ok {
			s.Entry = to
		}
		out = append(out, s)
	}
	return out
}
