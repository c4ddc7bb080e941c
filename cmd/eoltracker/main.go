// Package main is the entry point for the eoltracker CLI.
//
// The tracker can be run either as a library (SDK) or as a standalone binary
// with a YAML or TOML configuration file. This CLI provides the standalone
// binary approach.
//
// Usage:
//
//	eoltracker serve -c config.yaml    # Start the tracker and dashboard
//	eoltracker check -c config.yaml    # Fetch once and print the sensors
//	eoltracker validate -c config.yaml # Validate configuration
//	eoltracker version                 # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// global logging flags, shared by every subcommand
var (
	logLevel  string
	logFormat string
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "eoltracker",
	Short: "Track the support lifecycle of a software release",
	Long: `eoltracker follows one release on endoflife.date and reports its
release date, LTS, end-of-life, discontinued and maintained status.

Quick start:
  1. Create a config file (eoltracker.yaml)
  2. Run: eoltracker serve -c eoltracker.yaml
  3. Open http://localhost:8080 in your browser

Example config:
  poll_interval: 5m
  entry:
    input_device: https://endoflife.date/api/v1/products/ubuntu/releases/22.04`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this eoltracker binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "eoltracker %s\n", version)
		_, _ = fmt.Fprintf(out, "  commit: %s\n", commit)
		_, _ = fmt.Fprintf(out, "  built:  %s\n", date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", formatJSON, "log format (json, console)")

	rootCmd.AddCommand(versionCmd)
}
