package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"leetdl/pkg/config"
	"leetdl/pkg/ui"
)

const exampleConfigPath = "leetdl.yaml"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage leetdl configuration files.

Values are resolved in this order:
  - Command line flags (highest priority)
  - LEETDL_* environment variables, also read from .env
  - Configuration file (JSON, or YAML for .yaml/.yml)
  - Default values (lowest priority)`,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example configuration file",
	Long: `Create an example YAML configuration file. It is written to leetdl.yaml
unless --config names another path. Existing files are never overwritten.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration with cookies masked",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(initCmd, showCmd, validateCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configFile
	if path == "" {
		path = exampleConfigPath
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("configuration file %s already exists", path)
	}

	cfg := config.DefaultConfig()
	cfg.LeetCodeSession = "YOUR_LEETCODE_SESSION"
	cfg.CSRFToken = "YOUR_CSRFTOKEN"
	cfg.OutputDir = "./leetcode"

	if err := cfg.Save(path); err != nil {
		return err
	}

	ui.PrintSuccess("Configuration written to " + path)
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "1. Replace the cookie placeholders (see 'leetdl auth login' for where to find them)")
	fmt.Fprintf(out, "2. Run 'leetdl config validate -c %s'\n", path)
	fmt.Fprintf(out, "3. Run 'leetdl -c %s'\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg.Masked())
	if err != nil {
		return fmt.Errorf("failed to format configuration: %w", err)
	}

	ui.PrintHighlight("Current Configuration")
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	path := configFile
	if path == "" {
		path = config.DefaultPath
	}
	ui.PrintInfo("Validating configuration", path)

	cfg, err := config.Load(path, nil)
	if err != nil {
		return err
	}

	if cfg.LeetCodeSession == "YOUR_LEETCODE_SESSION" || cfg.CSRFToken == "YOUR_CSRFTOKEN" {
		ui.PrintWarning("Cookie placeholders have not been replaced")
	}
	if info, err := os.Stat(cfg.OutputDir); err == nil && !info.IsDir() {
		return fmt.Errorf("output_dir %s is not a directory", cfg.OutputDir)
	}

	ui.PrintSuccess("Configuration is valid")
	ui.PrintInfo("Output directory", cfg.OutputDir)
	ui.PrintInfo("Log level", cfg.Logging.Level)
	return nil
}
