package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jpalmerr/eoltracker"
	"github.com/jpalmerr/eoltracker/example/mockapi"
)

func main() {
	logger := slog.Default()

	// start a flapping mock of the endoflife.date API (see mockapi)
	go func() {
		if err := http.ListenAndServe(":9999", mockapi.New(logger, true)); err != nil {
			logger.Error("mock API error", "error", err)
		}
	}()
	time.Sleep(100 * time.Millisecond)

	entry, err := eoltracker.NewEntry("ubuntu/22.04",
		eoltracker.WithSlugMode(),
		eoltracker.WithBaseURL("http://localhost:9999/api/v1"),
		eoltracker.WithEntryID("demo"),
	)
	if err != nil {
		logger.Error("failed to create entry", "error", err)
		os.Exit(1)
	}

	tr, err := eoltracker.New(
		eoltracker.WithEntry(entry),
		eoltracker.WithPollingInterval(10*time.Second),
		eoltracker.WithPort(8080),
		eoltracker.WithTitle("EOL Tracker Demo"),
		eoltracker.WithUpdateCallback(func(u eoltracker.Update) {
			if !u.OK() {
				logger.Warn("refresh failed", "identifier", u.Identifier, "error", u.Err)
				return
			}
			logger.Info("refreshed",
				"identifier", u.Identifier,
				"release_date", u.Snapshot.Release.ReleaseDate,
				"eol", u.Snapshot.Release.EOL(),
				"duration_ms", u.Duration.Milliseconds(),
			)
		}),
	)
	if err != nil {
		logger.Error("failed to create tracker", "error", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("  ╔═══════════════════════════════════════════════════════╗")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   EOL Tracker Demo                                    ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Open http://localhost:8080 in your browser          ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Tracking Ubuntu 22.04 on a local mock API that      ║")
	fmt.Println("  ║   drops into a 503 outage every 20-60 seconds         ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Press Ctrl+C to stop                                ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ╚═══════════════════════════════════════════════════════╝")
	fmt.Println()

	// set up context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := tr.Start(ctx); err != nil {
		logger.Error("tracker error", "error", err)
		os.Exit(1)
	}
}
