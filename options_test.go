package eoltracker

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/jpalmerr/eoltracker/notify"
)

func testEntry(t *testing.T) Entry {
	t.Helper()
	e, err := NewEntry(ubuntuURI, WithEntryID("test-entry"))
	if err != nil {
		t.Fatalf("NewEntry() error = %v", err)
	}
	return e
}

func TestNew_Valid(t *testing.T) {
	tr, err := New(WithEntry(testEntry(t)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if tr.Entry().ID() != "test-entry" {
		t.Errorf("Entry().ID() = %q", tr.Entry().ID())
	}
}

func TestNew_NoEntry(t *testing.T) {
	_, err := New()
	if err == nil {
		t.Fatal("New() expected error for no entry, got nil")
	}
}

func TestNew_TwoEntries(t *testing.T) {
	_, err := New(WithEntry(testEntry(t)), WithEntry(testEntry(t)))
	if err == nil || !strings.Contains(err.Error(), "only one entry") {
		t.Errorf("New() error = %v, want 'only one entry'", err)
	}
}

func TestNew_ZeroEntry(t *testing.T) {
	if _, err := New(WithEntry(Entry{})); err == nil {
		t.Error("New() with zero Entry should fail")
	}
}

func TestNew_Defaults(t *testing.T) {
	tr, err := New(WithEntry(testEntry(t)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if tr.Port() != 8080 {
		t.Errorf("Port() = %d, want 8080", tr.Port())
	}
	if tr.PollingInterval() != 300*time.Second {
		t.Errorf("PollingInterval() = %v, want 300s", tr.PollingInterval())
	}
	if tr.Notifications() == nil {
		t.Error("Notifications() = nil, persistent notifications should be on by default")
	}
	if tr.Data() != nil || tr.Entities() != nil {
		t.Error("Data() and Entities() should be nil before Setup")
	}
}

func TestOptions_Invalid(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{name: "zero interval", opt: WithPollingInterval(0)},
		{name: "negative interval", opt: WithPollingInterval(-time.Second)},
		{name: "port zero", opt: WithPort(0)},
		{name: "port too large", opt: WithPort(70000)},
		{name: "nil logger", opt: WithLogger(nil)},
		{name: "nil fetcher", opt: WithFetcher(nil)},
		{name: "empty slack url", opt: WithSlackWebhook("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(WithEntry(testEntry(t)), tt.opt); err == nil {
				t.Error("New() error = nil, want error")
			}
		})
	}
}

func TestOptions_Applied(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
	tr, err := New(
		WithEntry(testEntry(t)),
		WithPollingInterval(time.Minute),
		WithPort(9090),
		WithLogger(logger),
		WithTitle("Fleet"),
		WithUserAgent("test/1.0"),
		WithSlackWebhook("https://hooks.slack.com/services/T/B/X"),
		WithUpdateCallback(nil),
		WithNotifier(nil),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if tr.PollingInterval() != time.Minute {
		t.Errorf("PollingInterval() = %v", tr.PollingInterval())
	}
	if tr.Port() != 9090 {
		t.Errorf("Port() = %d", tr.Port())
	}
	if tr.title != "Fleet" {
		t.Errorf("title = %q", tr.title)
	}
	if len(tr.updateCallbacks) != 0 {
		t.Errorf("nil callback registered: %d", len(tr.updateCallbacks))
	}
	if m, ok := tr.notifier.(notify.Multi); !ok || len(m) != 2 {
		t.Errorf("notifier = %#v, want persistent + slack", tr.notifier)
	}
}

func TestWithPersistentNotifications_Disabled(t *testing.T) {
	tr, err := New(WithEntry(testEntry(t)), WithPersistentNotifications(false))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if tr.Notifications() != nil {
		t.Error("Notifications() should be nil when disabled")
	}
	if tr.notifier != nil {
		t.Errorf("notifier = %#v, want nil", tr.notifier)
	}
	if tr.DismissNotification("x") {
		t.Error("DismissNotification() = true with no store")
	}
}

func TestWithNotifier_ReceivesFailure(t *testing.T) {
	var got []notify.Notification
	n := notify.NotifierFunc(func(_ context.Context, msg notify.Notification) error {
		got = append(got, msg)
		return nil
	})

	tr, err := New(
		WithEntry(testEntry(t)),
		WithFetcher(&stubFetcher{err: errNotFound}),
		WithNotifier(n),
		WithLogger(testLogger()),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_ = tr.Setup(context.Background())

	if len(got) != 1 {
		t.Fatalf("notifications = %d, want 1", len(got))
	}
	if !strings.Contains(got[0].Message, ubuntuURI) {
		t.Errorf("Message = %q, want identifier", got[0].Message)
	}
}
