// Package editor runs a text editor on a temporary buffer file.
package editor

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/rs/zerolog/log"
)

// Runner edits a buffer with an external command attached to the terminal.
type Runner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New creates a Runner attached to the process's terminal.
func New() *Runner {
	return &Runner{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Edit writes buffer to a temporary .yaml file, runs command on it and
// returns the file's contents once the command exits. The command is a
// shell command line; the file path is appended as its last argument.
func (r *Runner) Edit(ctx context.Context, command string, buffer []byte) ([]byte, error) {
	f, err := os.CreateTemp("", "fstunes-*.yaml")
	if err != nil {
		return nil, fmt.Errorf("create buffer: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.Write(buffer); err != nil {
		f.Close()
		return nil, fmt.Errorf("write buffer: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("write buffer: %w", err)
	}

	log.Debug().Str("command", command).Str("path", path).Msg("run editor")
	cmd := exec.CommandContext(ctx, "sh", "-c", command+` "$1"`, "sh", path)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("editor %q: %w", command, err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read buffer: %w", err)
	}
	return edited, nil
}
