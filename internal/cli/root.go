// Package cli wires the fstunes commands to the command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/radian-software/fstunes/internal/app"
	"github.com/radian-software/fstunes/internal/config"
	"github.com/radian-software/fstunes/internal/errmsg"
	"github.com/radian-software/fstunes/internal/library"
	"github.com/radian-software/fstunes/internal/prompt"
)

// Exit statuses.
const (
	exitOK       = 0
	exitError    = 1
	exitDeclined = 2
)

// state is shared by every command of one invocation.
type state struct {
	debug bool
	cfg   *config.Config
}

// newApp opens the configured library for cmd.
func (s *state) newApp(cmd *cobra.Command) (*app.App, error) {
	root, err := library.Open(s.cfg.Home)
	if err != nil {
		return nil, err
	}
	a := app.New(s.cfg, root, cmd.OutOrStdout())
	a.Prompt = prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())
	return a, nil
}

// NewRootCommand builds the fstunes command tree.
func NewRootCommand() *cobra.Command {
	s := &state{}
	cmd := &cobra.Command{
		Use:           "fstunes",
		Short:         "Minimal command-line music library manager and media player",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			s.cfg = cfg
			setupLogging(cmd.ErrOrStderr(), s.debug || cfg.Debug)
			return nil
		},
	}
	cmd.PersistentFlags().BoolVar(&s.debug, "debug", false, "Log every filesystem mutation")

	cmd.AddCommand(
		cmdImport(s),
		cmdPlaylist(s),
		cmdInsert(s),
		cmdRemove(s),
		cmdEdit(s),
		cmdList(s),
		cmdDelete(s),
		cmdSeek(s),
	)
	return cmd
}

func setupLogging(w io.Writer, debug bool) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})
}

// Execute runs the command line args and returns the process exit status.
// A declined confirmation exits with status 2 and no message.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errmsg.ErrDeclined):
		return exitDeclined
	}
	fmt.Fprintf(stderr, "fstunes: %v\n", err)
	return exitError
}
