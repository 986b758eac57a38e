package app

import (
	"github.com/dustin/go-humanize/english"

	"github.com/radian-software/fstunes/internal/playlists"
)

// CreatePlaylists creates empty playlists. Nothing is created if any name
// conflicts.
func (a *App) CreatePlaylists(names []string) error {
	if err := a.Root.Playlists.Create(names); err != nil {
		return err
	}
	a.printf("created %s\n", english.Plural(len(names), "playlist", ""))
	return nil
}

// DeletePlaylists deletes playlists and their entries after showing how many
// songs each one holds.
func (a *App) DeletePlaylists(names []string, yes bool) error {
	err := a.Root.Playlists.Delete(names, func(counts []playlists.Count, defaultYes bool) (bool, error) {
		for _, c := range counts {
			a.printf("playlist %s: %s\n", c.Name, english.Plural(c.Songs, "song", ""))
		}
		if yes {
			return true, nil
		}
		return a.Prompt.Confirm("Delete "+english.Plural(len(counts), "playlist", "")+"?", defaultYes)
	})
	if err != nil {
		return err
	}
	a.printf("deleted %s\n", english.Plural(len(names), "playlist", ""))
	return nil
}
