package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"leetdl/pkg/ui"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile    string
	logLevel      string
	notifications bool
	quiet         bool
)

// rootCmd downloads accepted submissions when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "leetdl",
	Short: "Download your accepted LeetCode solutions",
	Long: `leetdl downloads every accepted LeetCode submission of the logged-in user
into a tree of problem directories:

  <output_dir>/<problem>/README.md
  <output_dir>/<problem>/<language>/solution_<n>.<ext>

Solutions are ranked by recency; solution_1 is the newest accepted one.
Credentials come from the config file, LEETDL_* environment variables or
a stored account (see 'leetdl auth login').`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if quiet {
			ui.SetQuietMode(true)
		}
	},
	RunE: runDownload,
}

// Execute runs the root command and exits with status 1 on failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.PrintError("Error", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is config.json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&notifications, "notifications", false, "send a desktop notification when the run ends")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")

	rootCmd.SetVersionTemplate(`leetdl {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
