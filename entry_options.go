package eoltracker

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// entryConfig holds mutable state during entry construction.
type entryConfig struct {
	id      string
	slug    bool
	baseURL string
	timeout time.Duration
}

// EntryOption configures an [Entry] during construction.
//
// Built-in options: [WithEntryID], [WithSlugMode], [WithBaseURL],
// [WithFetchTimeout].
type EntryOption func(*entryConfig) error

// WithEntryID sets an explicit entry ID instead of the derived default.
//
// Returns an error if id is empty.
func WithEntryID(id string) EntryOption {
	return func(cfg *entryConfig) error {
		id = strings.TrimSpace(id)
		if id == "" {
			return errors.New("entry ID cannot be empty")
		}
		cfg.id = id
		return nil
	}
}

// WithSlugMode treats the identifier as "product" or "product/release",
// expanded against the base URL. A missing release means "latest".
func WithSlugMode() EntryOption {
	return func(cfg *entryConfig) error {
		cfg.slug = true
		return nil
	}
}

// WithBaseURL sets the API root used in slug mode. Defaults to
// https://endoflife.date/api/v1.
//
// Returns an error if the URL has no scheme or host.
func WithBaseURL(rawURL string) EntryOption {
	return func(cfg *entryConfig) error {
		u, err := url.Parse(rawURL)
		if err != nil {
			return errors.New("invalid base URL: " + err.Error())
		}
		if u.Scheme == "" || u.Host == "" {
			return errors.New("base URL must have a scheme and host")
		}
		cfg.baseURL = strings.TrimRight(rawURL, "/")
		return nil
	}
}

// WithFetchTimeout bounds a single fetch, covering both the release and the
// product request. Defaults to 10 seconds.
//
// Returns an error if the duration is zero or negative.
func WithFetchTimeout(d time.Duration) EntryOption {
	return func(cfg *entryConfig) error {
		if d <= 0 {
			return errors.New("fetch timeout must be positive")
		}
		cfg.timeout = d
		return nil
	}
}
