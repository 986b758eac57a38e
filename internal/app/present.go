package app

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize/english"

	"github.com/radian-software/fstunes/internal/library"
	"github.com/radian-software/fstunes/internal/playlist"
	"github.com/radian-software/fstunes/internal/render"
)

// label is a song's path relative to the media tree.
func (a *App) label(s library.Song) string {
	rel, err := filepath.Rel(a.Root.MediaDir(), s.Path)
	if err != nil {
		return s.Path
	}
	return render.Sanitize(filepath.ToSlash(rel))
}

func (a *App) entryLine(style lipgloss.Style, mark string, index int64, s library.Song) {
	a.printf("%s\n", style.Render(fmt.Sprintf("%s %6d  %s", mark, index, a.label(s))))
}

// presentInsert shows the neighbours of the insertion point, the new
// entries and the mutation counts. Queue indices are shown relative to the
// current marker after the insertion.
func (a *App) presentInsert(plan *playlist.InsertPlan) {
	var offset int64
	if plan.Queue {
		offset = plan.NewCurrent
	}
	a.printf("%s\n", a.Styles.Header.Render(fmt.Sprintf("insert %s into %s:",
		english.Plural(len(plan.Songs), "song", ""), plan.Playlist)))
	for _, mv := range plan.ContextBefore {
		a.entryLine(a.Styles.Muted, " ", mv.To-offset, mv.Song)
	}
	for i, s := range plan.Songs {
		a.entryLine(a.Styles.Added, "+", plan.Start+int64(i)-offset, s)
	}
	for _, mv := range plan.ContextAfter {
		a.entryLine(a.Styles.Muted, " ", mv.To-offset, mv.Song)
	}
	a.printf("%s, %s, %s\n",
		a.Styles.Moved.Render("rename "+english.Plural(len(plan.Renames), "entry", "entries")),
		a.Styles.Added.Render("create "+english.Plural(len(plan.Songs), "entry", "entries")),
		a.Styles.Removed.Render("prune "+english.Plural(len(plan.Prunes), "entry", "entries")))
	if plan.Queue && plan.NewCurrent != plan.Current {
		a.printf("current marker moves from %d to %d\n", plan.Current, plan.NewCurrent)
	}
}

// presentRemove lists the entries removed from one playlist.
func (a *App) presentRemove(plan *playlist.RemovePlan) {
	var offset int64
	if plan.Queue {
		offset = plan.Current
	}
	a.printf("%s\n", a.Styles.Header.Render(fmt.Sprintf("remove %s from %s:",
		english.Plural(len(plan.Deletes), "song", ""), plan.Playlist)))
	for _, s := range plan.Deletes {
		a.entryLine(a.Styles.Removed, "-", s.Entry-offset, s)
	}
	a.printf("%s\n", a.Styles.Moved.Render("rename "+english.Plural(len(plan.Renames), "entry", "entries")))
}
