package eoltracker

import (
	"bytes"
	"context"
	"time"

	"github.com/jpalmerr/eoltracker/eol"
)

// Fetcher retrieves one complete snapshot for an identifier. It returns an
// *eol.FetchError on failure and must not retry.
type Fetcher interface {
	Fetch(ctx context.Context, identifier string) (eol.Snapshot, error)
}

// Update describes one completed refresh attempt, as passed to
// [WithUpdateCallback].
type Update struct {
	// EntryID is the ID of the tracked entry.
	EntryID string

	// Identifier is the configured identifier.
	Identifier string

	// Snapshot is a copy of the new data on success, nil on failure.
	Snapshot *eol.Snapshot

	// Err is the fetch error on failure. The previous data stays in place.
	Err error

	// Duration is how long the fetch took.
	Duration time.Duration

	// CheckedAt is when the attempt completed.
	CheckedAt time.Time
}

// OK reports whether the refresh succeeded.
func (u Update) OK() bool {
	return u.Err == nil
}

// copySnapshot returns a copy the callback may keep or mutate.
func copySnapshot(s *eol.Snapshot) *eol.Snapshot {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Release.Custom = eol.Custom(bytes.Clone(s.Release.Custom))
	cp.Release.IsLTS = cloneBool(s.Release.IsLTS)
	cp.Release.IsEOL = cloneBool(s.Release.IsEOL)
	cp.Release.IsDiscontinued = cloneBool(s.Release.IsDiscontinued)
	cp.Release.IsMaintained = cloneBool(s.Release.IsMaintained)
	return &cp
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}
