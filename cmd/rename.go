package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"BatchRenamer/internal/naming"
)

var renameCmd = &cobra.Command{
	Use:   "rename DIR",
	Short: "Rename the listed items of DIR to the names read from a file",
	Long: `rename lists DIR the same way "list" does and pairs every listed item, in
order, with one line of the names file ("-" reads standard input). The number
of lines must match the number of items. Items that vanished in between are
skipped and reported; the rest of the batch still goes through.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		afs := afero.NewOsFs()
		sess, err := newSession(cmd, afs, args[0])
		if err != nil {
			return err
		}
		if err := sess.Refresh(); err != nil {
			return err
		}

		namesFile, _ := cmd.Flags().GetString("names")
		names, err := readNames(cmd.InOrStdin(), namesFile)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
			for _, p := range naming.Check(afs, sess.State().Directory, sess.Items(), names) {
				line := p.Old + " -> " + p.New
				if p.Warning != "" {
					line += "  [" + p.Warning + "]"
				}
				fmt.Fprintln(out, line)
			}
			return nil
		}

		rep, err := sess.BatchRename(names)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, rep.Summary("Renamed"))
		if len(rep.Failed) > 0 {
			return fmt.Errorf("%d item(s) skipped", len(rep.Failed))
		}
		return nil
	},
}

// readNames reads one name per line, split the same way as the window's
// new-names box.
func readNames(stdin io.Reader, path string) ([]string, error) {
	var r io.Reader
	switch path {
	case "":
		return nil, fmt.Errorf("--names is required")
	case "-":
		r = stdin
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return naming.Lines(string(data)), nil
}

func init() {
	addSelectionFlags(renameCmd.Flags())
	renameCmd.Flags().String("names", "", `file with one new name per line, "-" for stdin`)
	renameCmd.Flags().Bool("dry-run", false, "print the pairing and warnings without renaming")
}
