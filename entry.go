package eoltracker

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jpalmerr/eoltracker/eol"
	"github.com/jpalmerr/eoltracker/internal/poller"
)

// Entry is one tracked release: the identifier the user configured plus the
// stable entry ID that scopes its entities.
//
// Entry is immutable after creation via [NewEntry].
type Entry struct {
	id         string
	identifier string
	slug       bool
	baseURL    string
	timeout    time.Duration
}

// ID returns the entry ID. Entity unique IDs are derived from it, so it must
// stay the same across restarts.
func (e Entry) ID() string {
	return e.id
}

// Identifier returns the configured identifier: a release resource URI, or a
// "product[/release]" slug in slug mode.
func (e Entry) Identifier() string {
	return e.identifier
}

// SlugMode reports whether the identifier is a slug.
func (e Entry) SlugMode() bool {
	return e.slug
}

// BaseURL returns the API root used in slug mode.
func (e Entry) BaseURL() string {
	return e.baseURL
}

// FetchTimeout returns the timeout for one fetch (both requests).
func (e Entry) FetchTimeout() time.Duration {
	return e.timeout
}

// ReleaseURI returns the release resource the entry polls.
func (e Entry) ReleaseURI() string {
	if !e.slug {
		return e.identifier
	}
	// validated in NewEntry
	uri, _ := poller.ReleaseURI(e.baseURL, e.identifier)
	return uri
}

// NewEntry creates an [Entry] for identifier.
//
// By default identifier must be a full release URI such as
// https://endoflife.date/api/v1/products/ubuntu/releases/22.04, with at least
// two path segments so the product URI can be derived. With [WithSlugMode] it
// is "product" or "product/release" instead.
//
// The entry ID defaults to a name-based UUID of the identifier, so the same
// identifier always yields the same entity IDs.
//
// Example:
//
//	entry, err := eoltracker.NewEntry("ubuntu/22.04",
//	    eoltracker.WithSlugMode(),
//	    eoltracker.WithEntryID("ubuntu-2204"),
//	)
func NewEntry(identifier string, opts ...EntryOption) (Entry, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return Entry{}, errors.New("identifier cannot be empty")
	}

	cfg := &entryConfig{
		baseURL: poller.DefaultBaseURL,
		timeout: poller.DefaultTimeout,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return Entry{}, err
		}
	}

	if cfg.slug {
		if _, err := poller.ReleaseURI(cfg.baseURL, identifier); err != nil {
			return Entry{}, fmt.Errorf("invalid identifier: %w", err)
		}
	} else if _, err := eol.ProductURI(identifier); err != nil {
		return Entry{}, fmt.Errorf("invalid identifier: %w", err)
	}

	id := cfg.id
	if id == "" {
		id = uuid.NewSHA1(uuid.NameSpaceURL, []byte(identifier)).String()
	}

	return Entry{
		id:         id,
		identifier: identifier,
		slug:       cfg.slug,
		baseURL:    cfg.baseURL,
		timeout:    cfg.timeout,
	}, nil
}
