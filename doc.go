// Package eoltracker tracks the support lifecycle of one software release
// using the public endoflife.date API.
//
// A [Tracker] polls the release and its product on a fixed interval, keeps
// the last good snapshot in a shared cache and exposes it as sensor
// entities: one release date sensor and four boolean status sensors (LTS,
// EOL, Discontinued, Maintained). The entities are served as JSON, over
// Server-Sent Events and on an embedded dashboard.
//
// # Quick Start
//
//	entry, _ := eoltracker.NewEntry("https://endoflife.date/api/v1/products/ubuntu/releases/22.04")
//	tr, _ := eoltracker.New(eoltracker.WithEntry(entry))
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	tr.Start(ctx) // blocks until context is cancelled
//
// # Configuration
//
// Entries and trackers use the functional options pattern:
//
//	entry, err := eoltracker.NewEntry("nodejs/20",
//	    eoltracker.WithSlugMode(),
//	    eoltracker.WithEntryID("node-20"),
//	    eoltracker.WithFetchTimeout(5*time.Second),
//	)
//
//	tr, err := eoltracker.New(
//	    eoltracker.WithEntry(entry),
//	    eoltracker.WithPollingInterval(10*time.Minute),
//	    eoltracker.WithSlackWebhook(os.Getenv("SLACK_WEBHOOK_URL")),
//	)
//
// # Failure Handling
//
// The first refresh is mandatory: if it fails, [Tracker.Setup] returns an
// error and no entities are created. Later failures leave the cached data
// untouched, mark the published states unavailable and send a notification
// titled "EOL Tracker Error" to every configured notifier.
//
// # Architecture
//
//   - eol: API record types, lenient decoding and fetch errors
//   - sensor: entity projections over the cache
//   - notify: persistent, Slack and fan-out notifiers
//   - internal/poller: HTTP client, fetchers and the polling coordinator
//   - internal/store: entity state storage with pub/sub
//   - internal/server: chi router with REST API and Server-Sent Events
//   - dashboard: embedded web UI assets
//
// The internal packages are not part of the public API and may change
// without notice.
package eoltracker
