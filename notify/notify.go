// Package notify delivers user-visible notifications, such as fetch failures
// reported by the coordinator.
//
// Three implementations are provided: [Persistent] keeps notifications in
// memory until dismissed (the dashboard lists them), [Slack] posts them to an
// incoming webhook, and [Multi] fans out to several notifiers.
package notify

import (
	"context"
	"errors"
	"time"
)

// Notification is a single user-visible message.
type Notification struct {
	// ID is assigned by [Persistent] when empty.
	ID string `json:"id"`

	Title   string `json:"title"`
	Message string `json:"message"`

	// CreatedAt is assigned by [Persistent] when zero.
	CreatedAt time.Time `json:"created_at"`
}

// Notifier delivers notifications.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// NotifierFunc adapts a function to [Notifier].
type NotifierFunc func(ctx context.Context, n Notification) error

// Notify calls f(ctx, n).
func (f NotifierFunc) Notify(ctx context.Context, n Notification) error {
	return f(ctx, n)
}

// Multi delivers to every notifier in order. All notifiers are attempted;
// their errors are joined.
type Multi []Notifier

// Notify implements [Notifier].
func (m Multi) Notify(ctx context.Context, n Notification) error {
	var errs []error
	for _, nt := range m {
		if nt == nil {
			continue
		}
		if err := nt.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
