// Package player controls an external media player through shell commands.
package player

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/rs/zerolog/log"

	"github.com/radian-software/fstunes/internal/errmsg"
)

// Shell runs a configured command for each transport action. The commands
// are passed to sh -c, so they may use pipes and quoting.
type Shell struct {
	PlayCommand  string
	PauseCommand string
	Stdout       io.Writer
	Stderr       io.Writer
}

// NewShell creates a Shell transport writing command output to the
// process's stdout and stderr.
func NewShell(playCommand, pauseCommand string) *Shell {
	return &Shell{
		PlayCommand:  playCommand,
		PauseCommand: pauseCommand,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
	}
}

// Play starts playback.
func (s *Shell) Play(ctx context.Context) error {
	return s.run(ctx, "play", s.PlayCommand)
}

// Pause stops playback.
func (s *Shell) Pause(ctx context.Context) error {
	return s.run(ctx, "pause", s.PauseCommand)
}

func (s *Shell) run(ctx context.Context, action, command string) error {
	if command == "" {
		return errmsg.Configuration(errmsg.OpQueuePlay, "no %s command configured (set player.%s_command)", action, action)
	}
	log.Debug().Str("action", action).Str("command", command).Msg("run player command")
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s command: %w", action, err)
	}
	return nil
}
