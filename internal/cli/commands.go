package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/radian-software/fstunes/internal/app"
	"github.com/radian-software/fstunes/internal/errmsg"
)

func cmdImport(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "import PATH...",
		Short: "Add media files to library",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := s.newApp(cmd)
			if err != nil {
				return err
			}
			return a.Import(cmd.Context(), args)
		},
	}
}

func cmdPlaylist(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "playlist",
		Short: "Create or delete playlists",
	}

	create := &cobra.Command{
		Use:   "create PLAYLIST...",
		Short: "Create playlists",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := s.newApp(cmd)
			if err != nil {
				return err
			}
			return a.CreatePlaylists(args)
		},
	}

	var yes bool
	del := &cobra.Command{
		Use:   "delete PLAYLIST...",
		Short: "Delete playlists",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := s.newApp(cmd)
			if err != nil {
				return err
			}
			return a.DeletePlaylists(args, yes)
		},
	}
	addYesFlag(del, &yes)

	cmd.AddCommand(create, del)
	return cmd
}

func cmdInsert(s *state) *cobra.Command {
	var (
		sel      selectionFlags
		transfer bool
		yes      bool
		before   bool
		after    bool
	)
	cmd := &cobra.Command{
		Use:   "insert PLAYLIST INDEX",
		Short: "Add songs to a playlist or the queue",
		Long: "Add the selected songs to PLAYLIST before (default) or after INDEX.\n" +
			"For the queue, INDEX is relative to the current song. Use -- before a negative index.",
		Example: "  fstunes insert -m artist=Rush -s album,track queue 1\n" +
			"  fstunes insert -m from=queue -m index=0 -t --after -- queue -1",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(errmsg.OpPlaylistInsert, args[1])
			if err != nil {
				return err
			}
			selection, err := sel.selection(s.cfg)
			if err != nil {
				return err
			}
			a, err := s.newApp(cmd)
			if err != nil {
				return err
			}
			return a.Insert(selection, app.InsertOptions{
				Playlist: args[0],
				Index:    index,
				Before:   !after,
				Transfer: transfer,
				Yes:      yes,
			})
		},
	}
	sel.addMatchFlags(cmd.Flags())
	sel.addSortFlags(cmd.Flags())
	cmd.Flags().BoolVarP(&transfer, "transfer", "t", false, "Also remove songs from the playlists they were selected from")
	addYesFlag(cmd, &yes)
	cmd.Flags().BoolVar(&before, "before", false, "Insert before given index (default)")
	cmd.Flags().BoolVar(&after, "after", false, "Insert after given index")
	cmd.MarkFlagsMutuallyExclusive("before", "after")
	return cmd
}

func cmdRemove(s *state) *cobra.Command {
	var (
		sel selectionFlags
		yes bool
	)
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove songs from a playlist or the queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			selection, err := sel.selection(s.cfg)
			if err != nil {
				return err
			}
			a, err := s.newApp(cmd)
			if err != nil {
				return err
			}
			return a.Remove(selection, yes)
		},
	}
	sel.addMatchFlags(cmd.Flags())
	addYesFlag(cmd, &yes)
	return cmd
}

func cmdEdit(s *state) *cobra.Command {
	var (
		sel    selectionFlags
		fields []string
		editor string
		yes    bool
	)
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit song metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			selection, err := sel.selection(s.cfg)
			if err != nil {
				return err
			}
			fs, err := app.ParseFields(fields)
			if err != nil {
				return err
			}
			a, err := s.newApp(cmd)
			if err != nil {
				return err
			}
			return a.Edit(cmd.Context(), selection, app.EditOptions{Fields: fs, Command: editor, Yes: yes})
		},
	}
	sel.addMatchFlags(cmd.Flags())
	sel.addSortFlags(cmd.Flags())
	addFieldsFlag(cmd, &fields)
	cmd.Flags().StringVarP(&editor, "editor", "e", "", "Shell command to run text editor")
	addYesFlag(cmd, &yes)
	return cmd
}

func cmdList(s *state) *cobra.Command {
	var (
		sel    selectionFlags
		fields []string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List songs and associated information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			selection, err := sel.selection(s.cfg)
			if err != nil {
				return err
			}
			fs, err := app.ParseFields(fields)
			if err != nil {
				return err
			}
			a, err := s.newApp(cmd)
			if err != nil {
				return err
			}
			return a.List(selection, fs)
		},
	}
	sel.addMatchFlags(cmd.Flags())
	sel.addSortFlags(cmd.Flags())
	addFieldsFlag(cmd, &fields)
	return cmd
}

func cmdDelete(s *state) *cobra.Command {
	var (
		sel selectionFlags
		yes bool
	)
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete media files from library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			selection, err := sel.selection(s.cfg)
			if err != nil {
				return err
			}
			a, err := s.newApp(cmd)
			if err != nil {
				return err
			}
			return a.DeleteMedia(selection, yes)
		},
	}
	sel.addMatchFlags(cmd.Flags())
	addYesFlag(cmd, &yes)
	return cmd
}

func cmdSeek(s *state) *cobra.Command {
	var play, pause bool
	cmd := &cobra.Command{
		Use:   "seek [INDEX]",
		Short: "Change place in queue and play/pause",
		Long:  "Move the current song by INDEX entries. Use -- before a negative index.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := app.SeekOptions{Play: play, Pause: pause}
			if len(args) == 1 {
				offset, err := parseIndex(errmsg.OpQueueSeek, args[0])
				if err != nil {
					return err
				}
				opts.Offset = &offset
			}
			a, err := s.newApp(cmd)
			if err != nil {
				return err
			}
			return a.Seek(cmd.Context(), opts)
		},
	}
	cmd.Flags().BoolVarP(&play, "play", "p", false, "Start playing")
	cmd.Flags().BoolVarP(&pause, "pause", "P", false, "Stop playing")
	cmd.MarkFlagsMutuallyExclusive("play", "pause")
	return cmd
}

func addYesFlag(cmd *cobra.Command, yes *bool) {
	cmd.Flags().BoolVarP(yes, "yes", "y", false, "Don't ask for confirmation")
}

func addFieldsFlag(cmd *cobra.Command, fields *[]string) {
	cmd.Flags().StringSliceVarP(fields, "fields", "f", nil, "Which metadata fields to include")
}

func parseIndex(op errmsg.Op, s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errmsg.Configuration(op, "invalid index %q", s)
	}
	return n, nil
}
