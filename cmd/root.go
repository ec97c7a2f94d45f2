package cmd

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"BatchRenamer/internal/config"
	"BatchRenamer/internal/logger"
	"BatchRenamer/internal/session"
	"BatchRenamer/internal/ui"
)

var (
	cfgFile string
	v       = config.New()
	cfg     *config.Config
)

// rootCmd opens the window when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "batchren",
	Short: "List the files or folders of a directory and rename them in one batch",
	Long: `batchren lists the files or folders of a directory, takes one new name per
listed item and renames them in one batch. Every batch can be undone and redone
for as long as the program runs.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(v, cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return logger.Init(cfg.Logging.Level, cfg.Logging.File)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		initial, err := cfg.InitialState()
		if err != nil {
			return err
		}
		if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
			initial.Directory = dir
		}

		log := logger.Get()
		afs := afero.NewOsFs()
		sess := session.New(afs, log, initial)

		a := app.NewWithID("com.blackarck.batchren")
		w := ui.New(a, sess, afs, log, fyne.NewSize(cfg.Window.Width, cfg.Window.Height))
		log.Debug().Str("dir", initial.Directory).Msg("window starting")
		w.ShowAndRun()
		return nil
	},
}

// Execute runs the root command. It is called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.batchren/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-file", "", "also write logs to this file")
	_ = v.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("logging.file", rootCmd.PersistentFlags().Lookup("log-file"))

	rootCmd.Flags().String("dir", "", "directory to open on start")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(renameCmd)
}
