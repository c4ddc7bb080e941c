package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/eoltracker/config"
)

// validateCmd validates a config file without starting the server.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate an eoltracker configuration file without contacting the API.

This command parses the file, expands environment variables, validates all
fields and checks that the identifier can be resolved to release and product
URIs. It's useful for CI/CD pipelines or pre-deployment checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  eoltracker validate -c config.yaml
  eoltracker validate --config /etc/eoltracker/config.toml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	entry, err := config.BuildEntry(cfg)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	slack := "off"
	if cfg.Notifications.SlackWebhookURL != "" {
		slack = "on"
	}

	fmt.Printf("Config is valid!\n")
	fmt.Printf("  Port:          %d\n", cfg.Port)
	fmt.Printf("  Poll interval: %s\n", cfg.PollInterval.Duration())
	fmt.Printf("  Fetch timeout: %s\n", cfg.FetchTimeout.Duration())
	fmt.Printf("  Entry ID:      %s\n", entry.ID())
	fmt.Printf("  Mode:          %s\n", cfg.Entry.Mode)
	fmt.Printf("  Release URI:   %s\n", entry.ReleaseURI())
	fmt.Printf("  Slack:         %s\n", slack)

	return nil
}
