// Package cmd implements the CLI commands for mbz2md using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/mbz2md/core/config"
	"github.com/gaurav-prasanna/mbz2md/core/logging"
)

// opts is shared by every command; flags bind straight into it.
var opts = config.Default()

var rootCmd = &cobra.Command{
	Use:   "mbz2md",
	Short: "Convert Moodle book backups into Markdown",
	Long: `mbz2md unpacks a Moodle course backup (.mbz), reads the book activity
manifest and converts every visible chapter into a single Markdown document.

Usage:
  mbz2md convert [flags]
  mbz2md inspect [flags]`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.Archive, "archive", opts.Archive, "Moodle backup (.mbz) to read")
	pf.StringVar(&opts.WorkDir, "work_dir", opts.WorkDir, "Directory to unpack the backup into (default: a temporary directory)")
	pf.BoolVar(&opts.KeepWorkDir, "keep_work_dir", opts.KeepWorkDir, "Keep the temporary unpack directory")
	pf.StringVar(&opts.LogLevel, "log_level", opts.LogLevel, "Log level: trace, debug, info, warn, error")
	pf.StringVar(&opts.LogFormat, "log_format", opts.LogFormat, "Log format: console, json, pretty")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newLogger(name string) logging.Logger {
	logger, err := logging.New(name, logging.Config{Level: opts.LogLevel, Format: opts.LogFormat})
	if err != nil {
		return logging.NoOp()
	}
	return logger
}
