package eoltracker

import (
	"errors"
	"log/slog"
	"time"

	"github.com/jpalmerr/eoltracker/notify"
)

// trackerConfig holds mutable state during Tracker construction.
type trackerConfig struct {
	title           string
	entry           *Entry
	pollingInterval time.Duration
	port            int
	logger          *slog.Logger
	notifiers       []notify.Notifier
	persistent      bool
	fetcher         Fetcher
	userAgent       string
	updateCallbacks []func(Update)
}

// Option is a function that configures a [Tracker] during construction.
//
// Options return an error if validation fails.
type Option func(*trackerConfig) error

// WithEntry sets the release to track. Exactly one entry is required.
func WithEntry(e Entry) Option {
	return func(cfg *trackerConfig) error {
		if e.id == "" {
			return errors.New("entry must be created with NewEntry")
		}
		if cfg.entry != nil {
			return errors.New("only one entry may be configured")
		}
		cfg.entry = &e
		return nil
	}
}

// WithPollingInterval sets how often the entry is refreshed. Defaults to
// 300 seconds.
//
// Returns an error if the duration is zero or negative.
func WithPollingInterval(d time.Duration) Option {
	return func(cfg *trackerConfig) error {
		if d <= 0 {
			return errors.New("polling interval must be positive")
		}
		cfg.pollingInterval = d
		return nil
	}
}

// WithPort sets the HTTP port for the dashboard and API. Defaults to 8080.
//
// Returns an error if the port is outside the valid range (1-65535).
func WithPort(port int) Option {
	return func(cfg *trackerConfig) error {
		if port < 1 || port > 65535 {
			return errors.New("port must be between 1 and 65535")
		}
		cfg.port = port
		return nil
	}
}

// WithLogger sets a custom [slog.Logger]. If not specified, [slog.Default]
// is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *trackerConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithNotifier adds a destination for failure notifications. May be called
// multiple times. Nil notifiers are ignored.
func WithNotifier(n notify.Notifier) Option {
	return func(cfg *trackerConfig) error {
		if n != nil {
			cfg.notifiers = append(cfg.notifiers, n)
		}
		return nil
	}
}

// WithSlackWebhook sends failure notifications to a Slack incoming webhook.
//
// Returns an error if the URL is empty.
func WithSlackWebhook(webhookURL string) Option {
	return func(cfg *trackerConfig) error {
		s, err := notify.NewSlack(webhookURL, "")
		if err != nil {
			return err
		}
		cfg.notifiers = append(cfg.notifiers, s)
		return nil
	}
}

// WithPersistentNotifications controls the in-memory notification list
// served at /api/notifications. Enabled by default.
func WithPersistentNotifications(enabled bool) Option {
	return func(cfg *trackerConfig) error {
		cfg.persistent = enabled
		return nil
	}
}

// WithFetcher replaces the HTTP fetcher. Mostly useful in tests.
//
// Returns an error if f is nil.
func WithFetcher(f Fetcher) Option {
	return func(cfg *trackerConfig) error {
		if f == nil {
			return errors.New("fetcher cannot be nil")
		}
		cfg.fetcher = f
		return nil
	}
}

// WithUserAgent sets the User-Agent header sent to the API.
func WithUserAgent(ua string) Option {
	return func(cfg *trackerConfig) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithUpdateCallback registers a function called after every refresh
// attempt, successful or not.
//
// Callbacks run synchronously on the refreshing goroutine, in registration
// order, and must not block. Panics are recovered and logged.
//
// Example:
//
//	tr, err := eoltracker.New(
//	    eoltracker.WithEntry(entry),
//	    eoltracker.WithUpdateCallback(func(u eoltracker.Update) {
//	        if u.Snapshot != nil && u.Snapshot.Release.EOL() {
//	            log.Printf("%s is end of life", u.Identifier)
//	        }
//	    }),
//	)
//
// Nil callbacks are silently ignored.
func WithUpdateCallback(cb func(Update)) Option {
	return func(cfg *trackerConfig) error {
		if cb != nil {
			cfg.updateCallbacks = append(cfg.updateCallbacks, cb)
		}
		return nil
	}
}

// WithTitle sets the dashboard title. Defaults to "EOL Tracker".
func WithTitle(title string) Option {
	return func(cfg *trackerConfig) error {
		cfg.title = title
		return nil
	}
}
