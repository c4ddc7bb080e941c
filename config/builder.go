package config

import (
	"fmt"

	"github.com/jpalmerr/eoltracker"
)

// BuildEntry converts the entry section into an SDK [eoltracker.Entry].
func BuildEntry(cfg *Config) (eoltracker.Entry, error) {
	ec := cfg.Entry

	var opts []eoltracker.EntryOption
	if ec.EntryID != "" {
		opts = append(opts, eoltracker.WithEntryID(ec.EntryID))
	}
	if ec.Mode == ModeSlug {
		opts = append(opts, eoltracker.WithSlugMode())
	}
	if ec.BaseURL != "" {
		opts = append(opts, eoltracker.WithBaseURL(ec.BaseURL))
	}
	if cfg.FetchTimeout != 0 {
		opts = append(opts, eoltracker.WithFetchTimeout(cfg.FetchTimeout.Duration()))
	}

	entry, err := eoltracker.NewEntry(ec.InputDevice, opts...)
	if err != nil {
		return eoltracker.Entry{}, fmt.Errorf("entry (%s): %w", ec.InputDevice, err)
	}
	return entry, nil
}

// BuildOptions converts parsed configuration into SDK options.
//
// The caller appends runtime-only options such as [eoltracker.WithLogger].
func BuildOptions(cfg *Config) ([]eoltracker.Option, error) {
	entry, err := BuildEntry(cfg)
	if err != nil {
		return nil, err
	}

	opts := []eoltracker.Option{
		eoltracker.WithEntry(entry),
		eoltracker.WithPort(cfg.Port),
		eoltracker.WithPollingInterval(cfg.PollInterval.Duration()),
		eoltracker.WithPersistentNotifications(cfg.Notifications.PersistentEnabled()),
	}
	if cfg.Title != "" {
		opts = append(opts, eoltracker.WithTitle(cfg.Title))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, eoltracker.WithUserAgent(cfg.UserAgent))
	}
	if cfg.Notifications.SlackWebhookURL != "" {
		opts = append(opts, eoltracker.WithSlackWebhook(cfg.Notifications.SlackWebhookURL))
	}

	return opts, nil
}
