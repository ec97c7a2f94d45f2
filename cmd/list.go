package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"BatchRenamer/internal/export"
	"BatchRenamer/internal/listing"
	"BatchRenamer/internal/logger"
	"BatchRenamer/internal/session"
)

var listCmd = &cobra.Command{
	Use:   "list DIR",
	Short: "Print the files or folders of DIR, one per line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		afs := afero.NewOsFs()
		sess, err := newSession(cmd, afs, args[0])
		if err != nil {
			return err
		}
		if err := sess.Refresh(); err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			for _, name := range sess.Items() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		}

		path, err := export.Save(afs, out, sess.Items())
		if err != nil {
			return err
		}
		logger.Get().Info().Str("path", path).Int("count", len(sess.Items())).Msg("list saved")
		return nil
	},
}

// addSelectionFlags registers the flags shared by list and rename.
func addSelectionFlags(fs *pflag.FlagSet) {
	fs.Bool("folders", false, "list folders instead of files")
	fs.String("sort", "", "sort by name or date (default from config)")
	fs.String("filter", "", "only items whose name contains this text, ignoring case")
}

// newSession builds a session for dir from the config defaults and the
// selection flags.
func newSession(cmd *cobra.Command, afs afero.Fs, dir string) (*session.Session, error) {
	initial, err := cfg.InitialState()
	if err != nil {
		return nil, err
	}
	initial.Directory = dir

	if cmd.Flags().Changed("folders") {
		folders, _ := cmd.Flags().GetBool("folders")
		initial.Mode = listing.Files
		if folders {
			initial.Mode = listing.Folders
		}
	}
	if s, _ := cmd.Flags().GetString("sort"); s != "" {
		if initial.SortBy, err = listing.ParseSortKey(s); err != nil {
			return nil, err
		}
	}
	initial.Filter, _ = cmd.Flags().GetString("filter")

	return session.New(afs, logger.Get(), initial), nil
}

func init() {
	addSelectionFlags(listCmd.Flags())
	listCmd.Flags().String("out", "", "write the list to this file instead (.txt added when no extension)")
}
