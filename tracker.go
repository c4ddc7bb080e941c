package eoltracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/jpalmerr/eoltracker/dashboard"
	"github.com/jpalmerr/eoltracker/eol"
	"github.com/jpalmerr/eoltracker/internal/poller"
	"github.com/jpalmerr/eoltracker/internal/server"
	"github.com/jpalmerr/eoltracker/internal/store"
	"github.com/jpalmerr/eoltracker/notify"
	"github.com/jpalmerr/eoltracker/sensor"
)

const (
	defaultPollingInterval = poller.DefaultInterval
	defaultPort            = 8080
	coordinatorName        = "eol_tracker"
)

// ErrNotSetUp is returned by [Tracker.Refresh] before a successful
// [Tracker.Setup].
var ErrNotSetUp = errors.New("tracker is not set up")

// Tracker polls one endoflife.date release and exposes it as sensor
// entities, a JSON API and a live dashboard.
//
// The typical lifecycle is:
//
//	entry, _ := eoltracker.NewEntry("https://endoflife.date/api/v1/products/ubuntu/releases/22.04")
//	tr, err := eoltracker.New(eoltracker.WithEntry(entry))
//	if err != nil {
//	    slog.Error("failed to create tracker", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer cancel()
//
//	tr.Start(ctx) // blocks until context cancelled
type Tracker struct {
	title           string
	entry           Entry
	pollingInterval time.Duration
	port            int
	logger          *slog.Logger
	client          *poller.Client
	fetcher         Fetcher
	notifier        notify.Notifier
	persistent      *notify.Persistent
	updateCallbacks []func(Update)
	store           *store.MemoryStore

	// setupMu serializes Setup and teardown. It is never held while the
	// coordinator invokes hooks, which take mu.
	setupMu        sync.Mutex
	mu             sync.RWMutex
	coord          *poller.Coordinator
	entities       []sensor.Entity
	removeListener func()
}

// New creates a [Tracker] with the given options.
//
// An entry must be configured via [WithEntry]. Other options have defaults:
//   - Polling interval: 300 seconds
//   - Port: 8080
//   - Persistent notifications: enabled
//
// New does no I/O; the first fetch happens in [Tracker.Setup].
func New(opts ...Option) (*Tracker, error) {
	cfg := &trackerConfig{
		pollingInterval: defaultPollingInterval,
		port:            defaultPort,
		persistent:      true,
		userAgent:       poller.DefaultUserAgent,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.entry == nil {
		return nil, errors.New("an entry is required")
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("entry_id", cfg.entry.ID())

	t := &Tracker{
		title:           cfg.title,
		entry:           *cfg.entry,
		pollingInterval: cfg.pollingInterval,
		port:            cfg.port,
		logger:          logger,
		updateCallbacks: cfg.updateCallbacks,
		store:           store.NewMemoryStore(),
	}

	t.fetcher = cfg.fetcher
	if t.fetcher == nil {
		t.client = poller.NewClient(cfg.userAgent)
		if t.entry.SlugMode() {
			t.fetcher = poller.NewSlugFetcher(t.client, t.entry.BaseURL())
		} else {
			t.fetcher = poller.NewURIFetcher(t.client)
		}
	}

	var notifiers notify.Multi
	if cfg.persistent {
		t.persistent = notify.NewPersistent(notify.DefaultCapacity)
		notifiers = append(notifiers, t.persistent)
	}
	notifiers = append(notifiers, cfg.notifiers...)
	if len(notifiers) > 0 {
		t.notifier = notifiers
	}

	return t, nil
}

// Setup performs the mandatory first refresh and builds the entities.
//
// If the first refresh fails, Setup returns an error and no entities are
// created; calling Setup again retries. On success the entities are
// published to the state store and kept current by the coordinator.
// Setup is a no-op once it has succeeded.
func (t *Tracker) Setup(ctx context.Context) error {
	t.setupMu.Lock()
	defer t.setupMu.Unlock()

	t.mu.RLock()
	done := t.coord != nil
	t.mu.RUnlock()
	if done {
		return nil
	}

	coord := poller.NewCoordinator(poller.CoordinatorConfig{
		Name:       coordinatorName,
		Identifier: t.entry.Identifier(),
		Fetcher:    t.fetcher,
		Interval:   t.pollingInterval,
		Timeout:    t.entry.FetchTimeout(),
		Notifier:   t.notifier,
		Logger:     t.logger,
		OnResult:   t.handleResult,
	})

	if err := coord.FirstRefresh(ctx); err != nil {
		coord.Stop()
		return goerr.Wrap(err, "setup aborted",
			goerr.V("identifier", t.entry.Identifier()),
			goerr.V("entry_id", t.entry.ID()),
		)
	}

	entities, err := sensor.Build(t.entry.ID(), coord)
	if err != nil {
		coord.Stop()
		return goerr.Wrap(err, "failed to build entities", goerr.V("entry_id", t.entry.ID()))
	}

	t.mu.Lock()
	t.coord = coord
	t.entities = entities
	t.mu.Unlock()

	t.publish(nil)
	t.removeListener = coord.AddListener(func() { t.publish(nil) })

	t.logger.Info("entities created",
		"identifier", t.entry.Identifier(),
		"count", len(entities),
	)
	return nil
}

// Start sets up the tracker if needed, then polls and serves the dashboard
// until ctx is cancelled.
//
// Returns nil on graceful shutdown. Returns an error if setup fails or the
// HTTP server cannot start.
func (t *Tracker) Start(ctx context.Context) error {
	// check if context already cancelled
	if ctx.Err() != nil {
		return nil
	}

	if err := t.Setup(ctx); err != nil {
		return err
	}

	t.mu.RLock()
	coord := t.coord
	t.mu.RUnlock()

	coord.Start(ctx)

	opts := []server.Option{server.WithRefresher(t)}
	if t.persistent != nil {
		opts = append(opts, server.WithNotifications(t.persistent))
	}
	httpServer := server.NewServer(t.store, t.port, dashboard.Assets, t.title, t.logger, opts...)
	if err := httpServer.Start(ctx); err != nil {
		t.teardown()
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	t.logger.Info("eoltracker started",
		"identifier", t.entry.Identifier(),
		"interval", t.pollingInterval.String(),
		"url", fmt.Sprintf("http://localhost:%d", t.port),
	)

	<-ctx.Done()
	t.teardown()
	t.logger.Info("eoltracker stopped")
	return nil
}

// teardown removes the store listener, stops the coordinator and drops the
// entities and their published states. A later Setup starts from scratch.
func (t *Tracker) teardown() {
	t.setupMu.Lock()
	defer t.setupMu.Unlock()

	if t.removeListener != nil {
		t.removeListener()
		t.removeListener = nil
	}

	t.mu.Lock()
	coord := t.coord
	t.coord = nil
	t.entities = nil
	t.mu.Unlock()

	if coord != nil {
		coord.Stop()
	}
	t.store.Reset()
	t.client.Close()
}

// Close releases what a bare [Tracker.Setup] acquired. Start cleans up on
// its own, so Close is only needed when the tracker is used without it.
func (t *Tracker) Close() {
	t.teardown()
}

// Refresh forces an immediate refresh. Concurrent calls, and a tick that
// fires meanwhile, share one fetch.
func (t *Tracker) Refresh(ctx context.Context) error {
	t.mu.RLock()
	coord := t.coord
	t.mu.RUnlock()

	if coord == nil {
		return ErrNotSetUp
	}
	return coord.Refresh(ctx)
}

// Data returns the last good snapshot, or nil before setup.
func (t *Tracker) Data() *eol.Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.coord == nil {
		return nil
	}
	return t.coord.Data()
}

// Entities returns the sensor entities, or nil before setup.
func (t *Tracker) Entities() []sensor.Entity {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.entities == nil {
		return nil
	}
	return append([]sensor.Entity(nil), t.entities...)
}

// Entry returns the tracked entry.
func (t *Tracker) Entry() Entry {
	return t.entry
}

// Port returns the configured HTTP port.
func (t *Tracker) Port() int {
	return t.port
}

// PollingInterval returns the configured refresh interval.
func (t *Tracker) PollingInterval() time.Duration {
	return t.pollingInterval
}

// Notifications returns the stored failure notifications, newest last.
// Nil when persistent notifications are disabled.
func (t *Tracker) Notifications() []notify.Notification {
	if t.persistent == nil {
		return nil
	}
	return t.persistent.List()
}

// DismissNotification removes a stored notification.
func (t *Tracker) DismissNotification(id string) bool {
	if t.persistent == nil {
		return false
	}
	return t.persistent.Dismiss(id)
}

// handleResult is the coordinator's result hook. Failures mark the
// published states unavailable; successes were already published by the
// listener.
func (t *Tracker) handleResult(r poller.RefreshResult) {
	if r.Err != nil {
		t.publish(r.Err)
	}

	if len(t.updateCallbacks) == 0 {
		return
	}
	u := Update{
		EntryID:    t.entry.ID(),
		Identifier: t.entry.Identifier(),
		Snapshot:   copySnapshot(r.Snapshot),
		Err:        r.Err,
		Duration:   r.Duration,
		CheckedAt:  r.CheckedAt,
	}
	for _, cb := range t.updateCallbacks {
		invokeCallbackSafe(cb, u, t.logger)
	}
}

// publish writes every entity's current view to the store.
func (t *Tracker) publish(refreshErr error) {
	t.mu.RLock()
	entities := t.entities
	t.mu.RUnlock()

	var errStr *string
	if refreshErr != nil {
		s := refreshErr.Error()
		errStr = &s
	}

	now := time.Now()
	for _, e := range entities {
		t.store.Update(toEntityState(t.entry.ID(), e, errStr, now))
	}
}

// toEntityState converts a sensor entity to its stored JSON view.
func toEntityState(entryID string, e sensor.Entity, errStr *string, now time.Time) store.EntityState {
	return store.EntityState{
		UniqueID:      e.UniqueID(),
		EntryID:       entryID,
		Name:          e.Name(),
		State:         e.State(),
		DeviceClass:   e.DeviceClass(),
		Icon:          e.Icon(),
		EntityPicture: e.EntityPicture(),
		Attributes:    e.Attributes(),
		Device:        e.Device().Name,
		Available:     errStr == nil,
		UpdatedAt:     now,
		Error:         errStr,
	}
}

// invokeCallbackSafe calls an update callback with panic recovery.
// Panics are logged but do not propagate.
func invokeCallbackSafe(cb func(Update), u Update, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("update callback panicked",
				"correlation_id", uuid.NewString(),
				"panic", r,
				"identifier", u.Identifier,
			)
		}
	}()
	cb(u)
}
