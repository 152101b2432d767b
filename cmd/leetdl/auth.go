package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"leetdl/pkg/auth"
	"leetdl/pkg/config"
	"leetdl/pkg/leetcode"
	"leetdl/pkg/logger"
	"leetdl/pkg/ui"
)

var (
	skipVerify bool
	stdin      = bufio.NewReader(os.Stdin)
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage stored LeetCode cookies",
	Long: `Manage stored LeetCode session cookies.

Cookies are stored in the system keychain when available and in an encrypted
file otherwise. LEETDL_SESSION and LEETDL_CSRFTOKEN are read as a read-only
account named after LEETDL_USERNAME (or "default").`,
}

var loginCmd = &cobra.Command{
	Use:   "login [name]",
	Short: "Store LeetCode cookies",
	Long: `Prompt for the LEETCODE_SESSION and csrftoken cookies, check them against
LeetCode and store them. The account is named after the LeetCode user unless
a name is given.`,
	Example: `  leetdl auth login
  leetdl auth login work --skip-verify`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout <name>",
	Short: "Remove stored cookies",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogout,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored accounts",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(loginCmd, logoutCmd, listCmd)

	loginCmd.Flags().BoolVar(&skipVerify, "skip-verify", false, "store the cookies without checking them")
}

func runLogin(cmd *cobra.Command, args []string) error {
	manager, err := auth.NewManager()
	if err != nil {
		return fmt.Errorf("credential store: %w", err)
	}

	out := cmd.OutOrStdout()
	auth.ShowCookieExtractionGuide(out)

	fmt.Fprint(out, "LEETCODE_SESSION: ")
	session, err := readSecret()
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	fmt.Fprint(out, "csrftoken: ")
	csrfToken, err := readSecret()
	if err != nil {
		return fmt.Errorf("read csrftoken: %w", err)
	}

	account := &auth.Account{Session: session, CSRFToken: csrfToken}
	if len(args) > 0 {
		account.Username = strings.TrimSpace(args[0])
	}

	if !skipVerify {
		cfg := config.DefaultConfig()
		account.Apply(cfg)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
		defer cancel()

		user, err := leetcode.NewClient(cfg, logger.NewNopLogger()).VerifyLogin(ctx)
		if err != nil {
			return err
		}
		ui.PrintInfo("Logged in as", user)
		if account.Username == "" {
			account.Username = user
		}
	}

	if account.Username == "" {
		return fmt.Errorf("%w: an account name is required with --skip-verify", auth.ErrInvalidCredentials)
	}

	if err := manager.Store(account); err != nil {
		return err
	}

	ui.PrintSuccess("Account saved: " + account.Username)
	fmt.Fprintf(out, "\nUse it with:\n  leetdl download --account %s\n", account.Username)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	manager, err := auth.NewManager()
	if err != nil {
		return fmt.Errorf("credential store: %w", err)
	}

	if err := manager.Delete(args[0]); err != nil {
		return err
	}
	ui.PrintSuccess("Account removed: " + args[0])
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	manager, err := auth.NewManager()
	if err != nil {
		return fmt.Errorf("credential store: %w", err)
	}

	accounts, err := manager.List()
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		ui.PrintInfo("No stored accounts", "use 'leetdl auth login' to add one")
		return nil
	}

	t := ui.NewTable(cmd.OutOrStdout())
	t.AppendHeader([]interface{}{"Account", "LEETCODE_SESSION", "csrftoken", "Modified"})
	for _, a := range accounts {
		s := auth.SanitizeAccount(a)
		t.AppendRow([]interface{}{s.Username, s.Session, s.CSRFToken, s.LastModified.Format(time.DateTime)})
	}
	t.Render()
	return nil
}

// readSecret reads a line from stdin without echo when stdin is a terminal
func readSecret() (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		secret, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(secret)), nil
	}

	input, err := stdin.ReadString('\n')
	if err != nil && input == "" {
		return "", err
	}
	return strings.TrimSpace(input), nil
}
