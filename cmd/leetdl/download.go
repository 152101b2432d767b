package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"leetdl/pkg/auth"
	"leetdl/pkg/config"
	"leetdl/pkg/downloader"
	"leetdl/pkg/leetcode"
	"leetdl/pkg/logger"
	"leetdl/pkg/ui"
)

var (
	outputDir   string
	accountName string
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download all accepted submissions",
	Long: `Check the login, list every accepted submission and write the problem tree.

Nothing is written when the login check or the listing fails. Submissions whose
source cannot be found on the detail page are skipped; the run continues.`,
	Example: `  # Use config.json from the current directory
  leetdl download

  # Write somewhere else
  leetdl download --output ./solutions

  # Use cookies stored with 'leetdl auth login'
  leetdl download --account alice`,
	Args: cobra.NoArgs,
	RunE: runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)

	for _, cmd := range []*cobra.Command{rootCmd, downloadCmd} {
		cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (overrides output_dir)")
		cmd.Flags().StringVarP(&accountName, "account", "a", "", "use cookies of a stored account")
	}
}

func runDownload(cmd *cobra.Command, args []string) error {
	flags := make(map[string]interface{})
	if outputDir != "" {
		flags["output"] = outputDir
	}
	if logLevel != "" {
		flags["log-level"] = logLevel
	}

	if accountName != "" {
		account, err := retrieveAccount(accountName)
		if err != nil {
			return err
		}
		flags["leetcode-session"] = account.Session
		flags["csrftoken"] = account.CSRFToken
		ui.PrintInfo("Using account", account.Username)
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		if errors.Is(err, config.ErrConfigKeyMissing) && accountName == "" {
			ui.PrintWarning("Credentials can also come from a stored account", "leetdl auth login")
		}
		return err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return err
	}
	logger.SetLogger(log)

	ui.PrintLogo()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := leetcode.NewClient(cfg, log)
	d := downloader.New(client, cfg, log)
	d.SetProgress(ui.NewProgressDisplay(cfg.Logging.Level == "debug"))

	notifier := ui.NewNotifier(notifications)

	summary, err := d.Run(ctx)
	if err != nil {
		log.WithError(err).WithField("run_id", d.RunID()).Error("Download failed")
		if notifications {
			notifier.SendError("leetdl failed", err.Error())
		}
		return err
	}

	ui.PrintSummary(summary)
	notifier.SendSuccess("leetdl finished",
		fmt.Sprintf("%d solutions saved, %d skipped", summary.Written, summary.Skipped))
	return nil
}

func retrieveAccount(name string) (*auth.Account, error) {
	manager, err := auth.NewManager()
	if err != nil {
		return nil, fmt.Errorf("credential store: %w", err)
	}

	account, err := manager.Retrieve(name)
	if err != nil {
		return nil, fmt.Errorf("%w (see 'leetdl auth list')", err)
	}
	return account, nil
}
