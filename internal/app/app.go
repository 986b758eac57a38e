// Package app implements the fstunes commands on top of a library root.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/radian-software/fstunes/internal/config"
	"github.com/radian-software/fstunes/internal/editor"
	"github.com/radian-software/fstunes/internal/errmsg"
	"github.com/radian-software/fstunes/internal/importer"
	"github.com/radian-software/fstunes/internal/library"
	"github.com/radian-software/fstunes/internal/match"
	"github.com/radian-software/fstunes/internal/player"
	"github.com/radian-software/fstunes/internal/playlist"
	"github.com/radian-software/fstunes/internal/prompt"
	"github.com/radian-software/fstunes/internal/render"
	"github.com/radian-software/fstunes/internal/sorter"
	"github.com/radian-software/fstunes/internal/tags"
)

// Prompter asks the user to confirm a mutation.
type Prompter interface {
	Confirm(question string, defaultYes bool) (bool, error)
}

// Editor lets the user edit a text buffer.
type Editor interface {
	Edit(ctx context.Context, command string, buffer []byte) ([]byte, error)
}

// Compile-time assertions that the default collaborators satisfy their interfaces.
var (
	_ Prompter = (*prompt.Prompter)(nil)
	_ Editor   = (*editor.Runner)(nil)
)

// App runs commands against one library.
type App struct {
	Root   *library.Root
	Config *config.Config
	Out    io.Writer
	Styles *render.Styles

	Prompt       Prompter
	Editor       Editor
	Player       player.Interface
	ReadMetadata importer.MetadataReader
}

// New creates an App using the terminal for prompts, the editor and the
// player, and writing reports to out.
func New(cfg *config.Config, root *library.Root, out io.Writer) *App {
	return &App{
		Root:         root,
		Config:       cfg,
		Out:          out,
		Styles:       render.NewStyles(out),
		Prompt:       prompt.New(os.Stdin, out),
		Editor:       editor.New(),
		Player:       player.NewShell(cfg.Player.PlayCommand, cfg.Player.PauseCommand),
		ReadMetadata: tags.ReadMetadata,
	}
}

// Selection chooses and orders songs.
type Selection struct {
	Matchers *match.Matchers
	Keys     []sorter.Key
}

// songs collects the songs accepted by the selection's matchers and sorts
// them by its keys.
func (a *App) songs(sel Selection) ([]library.Song, error) {
	m := sel.Matchers
	if m == nil {
		m = match.New()
	}
	songs, err := library.CollectMatchedSongs(a.Root, m)
	if err != nil {
		return nil, err
	}
	if err := sorter.Sort(songs, sel.Keys); err != nil {
		return nil, err
	}
	return songs, nil
}

// confirm asks question unless yes is set. A negative answer becomes
// errmsg.ErrDeclined.
func (a *App) confirm(question string, defaultYes, yes bool) error {
	if yes {
		return nil
	}
	ok, err := a.Prompt.Confirm(question, defaultYes)
	if err != nil {
		return err
	}
	if !ok {
		return errmsg.ErrDeclined
	}
	return nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.Out, format, args...)
}

func (a *App) queueLength() int64 {
	if a.Config == nil {
		return playlist.DefaultQueueLength
	}
	return a.Config.QueueLength
}
