package app

import (
	"context"
	"fmt"

	"github.com/radian-software/fstunes/internal/errmsg"
	"github.com/radian-software/fstunes/internal/playlists"
)

// SeekOptions configures Seek.
type SeekOptions struct {
	// Offset moves the current marker relative to where it is. Nil leaves
	// it in place.
	Offset *int64
	Play   bool
	Pause  bool
}

// Seek moves the queue's current marker and then starts or stops playback.
func (a *App) Seek(ctx context.Context, opts SeekOptions) error {
	if opts.Play && opts.Pause {
		return errmsg.Configuration(errmsg.OpQueueSeek, "cannot both play and pause")
	}
	store := a.Root.Playlists
	current, err := store.Current()
	if err != nil {
		return err
	}
	if opts.Offset != nil {
		next := current + *opts.Offset
		if (*opts.Offset > 0) != (next > current) {
			return errmsg.Configuration(errmsg.OpQueueSeek, "offset %d is out of range", *opts.Offset)
		}
		if err := store.SetCurrent(next); err != nil {
			return fmt.Errorf("%s: %w", errmsg.OpQueueSeek, err)
		}
		current = next
	}

	songs, err := a.Root.PlaylistSongs(playlists.QueueName)
	if err != nil {
		return err
	}
	now := fmt.Sprintf("index %d (no song)", current)
	for _, s := range songs {
		if s.Entry == current {
			now = a.label(s)
			break
		}
	}
	a.printf("current: %s\n", now)

	switch {
	case opts.Play:
		return a.Player.Play(ctx)
	case opts.Pause:
		return a.Player.Pause(ctx)
	}
	return nil
}
