package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jpalmerr/eoltracker"
	"github.com/jpalmerr/eoltracker/config"
	"github.com/jpalmerr/eoltracker/sensor"
)

// checkCmd fetches the configured release once and prints its sensors.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Fetch the release once and print its sensors",
	Long: `Fetch the configured release once and print the sensors the tracker
would expose, without starting the server.

Exit codes:
  0 - Fetch succeeded
  1 - Config is invalid or the fetch failed

Example:
  eoltracker check -c config.yaml`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = checkCmd.MarkFlagRequired("config")
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(os.Stderr, logLevel, logFormat)
	if err != nil {
		return err
	}

	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	opts, err := config.BuildOptions(cfg)
	if err != nil {
		return fmt.Errorf("failed to build options: %w", err)
	}
	opts = append(opts, eoltracker.WithLogger(logger))

	tr, err := eoltracker.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create tracker: %w", err)
	}
	defer tr.Close()

	ctx, cancel := context.WithTimeout(commandContext(cmd), cfg.FetchTimeout.Duration()*2)
	defer cancel()

	if err := tr.Setup(ctx); err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	printEntities(cmd.OutOrStdout(), tr.Entities())
	return nil
}

var (
	headerColor = color.New(color.Bold)
	keyColor    = color.New(color.FgCyan)
	goodColor   = color.New(color.FgGreen)
	badColor    = color.New(color.FgRed)
)

// printEntities writes one block per entity. Boolean flags are colored by
// whether their value is good news for the release.
func printEntities(w io.Writer, entities []sensor.Entity) {
	for _, e := range entities {
		_, _ = headerColor.Fprintf(w, "%s", e.Name())
		_, _ = fmt.Fprintf(w, " (%s)\n", e.UniqueID())
		_, _ = keyColor.Fprintf(w, "  %-24s", "state")
		_, _ = stateColor(e).Fprintln(w, e.State())

		attrs := e.Attributes()
		keys := make([]string, 0, len(attrs))
		for k := range attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			_, _ = keyColor.Fprintf(w, "  %-24s", k)
			_, _ = fmt.Fprintln(w, attrs[k])
		}
	}
}

func stateColor(e sensor.Entity) *color.Color {
	b, ok := e.(*sensor.BooleanStatusSensor)
	if !ok {
		return color.New(color.Reset)
	}
	good := b.Value()
	switch b.Flag() {
	case sensor.FlagEOL, sensor.FlagDiscontinued:
		good = !good
	}
	if good {
		return goodColor
	}
	return badColor
}
