package main

import (
	"github.com/spf13/cobra"

	"github.com/yamaryu999/pdf-editor/internal/config"
	"github.com/yamaryu999/pdf-editor/internal/logger"
)

var (
	cfgFile  string
	logLevel string

	// cfg is loaded once before any subcommand runs.
	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pdf-editor",
	Short: "Headless tooling for the PDF overlay editor",
	Long: `pdf-editor is the command line surface of the PDF overlay editor:
it imports PDFs into the editable document model, renders page previews
and thumbnails, and composes documents back into PDF files.

The interactive canvas lives in the GUI; everything underneath it
(document model, import/export, snapping, history, autosave) is exercised
through this tool and its packages.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		return logger.Init(&logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pdf-editor.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}
