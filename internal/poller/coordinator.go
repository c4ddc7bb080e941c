package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/jpalmerr/eoltracker/eol"
	"github.com/jpalmerr/eoltracker/notify"
)

const (
	// DefaultInterval is the polling interval when none is configured.
	DefaultInterval = 300 * time.Second

	// DefaultTimeout bounds a single fetch (both requests).
	DefaultTimeout = 10 * time.Second

	// notifyTimeout bounds delivery of a failure notification.
	notifyTimeout = 10 * time.Second

	// FailureTitle is the title of failure notifications.
	FailureTitle = "EOL Tracker Error"

	refreshKey = "refresh"
)

// ErrFirstRefresh wraps the error of a failed [Coordinator.FirstRefresh].
var ErrFirstRefresh = errors.New("first refresh failed")

// ErrStopped is returned by refreshes requested after [Coordinator.Stop],
// and by a fetch that Stop interrupted.
var ErrStopped = errors.New("coordinator stopped")

// RefreshResult describes one completed refresh attempt.
type RefreshResult struct {
	// Snapshot is the new data on success, nil on failure.
	Snapshot *eol.Snapshot

	// Err is the fetch error on failure.
	Err error

	// Duration is how long the fetch took.
	Duration time.Duration

	// CheckedAt is when the attempt completed.
	CheckedAt time.Time
}

// CoordinatorConfig configures a [Coordinator].
type CoordinatorConfig struct {
	// Name identifies the coordinator in logs.
	Name string

	// Identifier is passed verbatim to the fetcher.
	Identifier string

	Fetcher Fetcher

	// Interval defaults to [DefaultInterval].
	Interval time.Duration

	// Timeout defaults to [DefaultTimeout].
	Timeout time.Duration

	// Notifier receives failure notifications. May be nil.
	Notifier notify.Notifier

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// OnResult is called after every refresh attempt, after listeners.
	OnResult func(RefreshResult)
}

// Coordinator is the shared polling cache.
//
// It owns a single ticker, funnels every refresh trigger through one
// singleflight key so at most one fetch is in flight, and keeps the last
// good [eol.Snapshot] in an atomic pointer. Failed refreshes leave the
// snapshot untouched and emit a notification.
//
// All methods are safe for concurrent use.
type Coordinator struct {
	name       string
	identifier string
	fetcher    Fetcher
	interval   time.Duration
	timeout    time.Duration
	notifier   notify.Notifier
	logger     *slog.Logger
	onResult   func(RefreshResult)

	data    atomic.Pointer[eol.Snapshot]
	lastErr atomic.Pointer[error]
	sf      singleflight.Group

	listenerMu sync.Mutex
	listeners  map[uint64]func()
	nextID     uint64

	// life bounds every fetch; Stop cancels it.
	life       context.Context
	lifeCancel context.CancelFunc

	// wg counts the ticker loop and in-flight fetches. Add only happens
	// under mu while stopped is false.
	mu      sync.Mutex
	started bool
	stopped bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewCoordinator creates a [Coordinator]. It does not fetch until
// [Coordinator.FirstRefresh], [Coordinator.Refresh] or [Coordinator.Start]
// is called.
func NewCoordinator(cfg CoordinatorConfig) *Coordinator {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Name == "" {
		cfg.Name = "eol_tracker"
	}

	life, lifeCancel := context.WithCancel(context.Background())

	return &Coordinator{
		life:       life,
		lifeCancel: lifeCancel,
		name:       cfg.Name,
		identifier: cfg.Identifier,
		fetcher:    cfg.Fetcher,
		interval:   cfg.Interval,
		timeout:    cfg.Timeout,
		notifier:   cfg.Notifier,
		logger:     cfg.Logger.With("coordinator", cfg.Name, "identifier", cfg.Identifier),
		onResult:   cfg.OnResult,
		listeners:  make(map[uint64]func()),
	}
}

// Data returns the last successful snapshot, or nil if none has completed.
// The returned value must be treated as read-only.
func (c *Coordinator) Data() *eol.Snapshot {
	return c.data.Load()
}

// Interval returns the polling interval.
func (c *Coordinator) Interval() time.Duration {
	return c.interval
}

// LastError returns the error of the most recent refresh, or nil if it
// succeeded.
func (c *Coordinator) LastError() error {
	if p := c.lastErr.Load(); p != nil {
		return *p
	}
	return nil
}

// LastUpdateSuccess reports whether the most recent refresh succeeded.
// False before any refresh has run.
func (c *Coordinator) LastUpdateSuccess() bool {
	p := c.lastErr.Load()
	return p != nil && *p == nil
}

// AddListener registers fn to be called after each successful refresh.
// The returned function removes the listener.
func (c *Coordinator) AddListener(fn func()) (remove func()) {
	c.listenerMu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.listenerMu.Unlock()

	return func() {
		c.listenerMu.Lock()
		delete(c.listeners, id)
		c.listenerMu.Unlock()
	}
}

// FirstRefresh performs the mandatory initial fetch. The error wraps
// [ErrFirstRefresh]; callers must not register entities when it fails.
func (c *Coordinator) FirstRefresh(ctx context.Context) error {
	if err := c.Refresh(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrFirstRefresh, err)
	}
	return nil
}

// Refresh forces an out-of-band fetch. If a fetch is already in flight,
// Refresh waits for it and returns its outcome instead of starting another.
//
// Cancelling ctx stops the wait, not the shared fetch. [Coordinator.Stop]
// cancels the fetch itself. After Stop, Refresh returns [ErrStopped].
func (c *Coordinator) Refresh(ctx context.Context) error {
	ch := c.sf.DoChan(refreshKey, func() (any, error) {
		return nil, c.refreshTracked()
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// refreshTracked registers the fetch with wg so Stop waits for it.
func (c *Coordinator) refreshTracked() error {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return ErrStopped
	}
	c.wg.Add(1)
	c.mu.Unlock()
	defer c.wg.Done()

	return c.refresh(c.life)
}

func (c *Coordinator) isStopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}

// refresh runs exactly one fetch. Only called through the singleflight group.
func (c *Coordinator) refresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	snap, err := c.fetcher.Fetch(ctx, c.identifier)
	duration := time.Since(start)

	// a fetch that outlived Stop must not repopulate the cache or fire hooks
	if c.isStopped() {
		c.logger.Debug("discarding fetch result after stop", "duration_ms", duration.Milliseconds())
		return ErrStopped
	}

	result := RefreshResult{Duration: duration, CheckedAt: time.Now(), Err: err}

	if err != nil {
		c.lastErr.Store(&err)
		c.logger.Error("failed to fetch data",
			"error", err,
			"duration_ms", duration.Milliseconds(),
		)
		c.notifyFailure(ctx, err)
		c.emit(result)
		return err
	}

	c.data.Store(&snap)
	var noErr error
	c.lastErr.Store(&noErr)
	c.logger.Debug("fetched data",
		"release", snap.Release.Label,
		"product", snap.Product.Label,
		"duration_ms", duration.Milliseconds(),
	)

	c.notifyListeners()
	result.Snapshot = &snap
	c.emit(result)
	return nil
}

// notifyFailure emits the user-visible failure notification.
func (c *Coordinator) notifyFailure(ctx context.Context, fetchErr error) {
	if c.notifier == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	n := notify.Notification{
		Title:   FailureTitle,
		Message: fmt.Sprintf("Error fetching data for URI '%s': %v", c.identifier, fetchErr),
	}
	if err := c.notifier.Notify(ctx, n); err != nil {
		c.logger.Warn("failed to deliver failure notification", "error", err)
	}
}

// notifyListeners calls every listener with panic recovery.
func (c *Coordinator) notifyListeners() {
	c.listenerMu.Lock()
	fns := make([]func(), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.listenerMu.Unlock()

	for _, fn := range fns {
		c.invokeSafe("listener", fn)
	}
}

func (c *Coordinator) emit(result RefreshResult) {
	if c.onResult == nil {
		return
	}
	c.invokeSafe("result hook", func() { c.onResult(result) })
}

// invokeSafe runs fn, logging a panic with a correlation ID instead of
// letting it crash the polling loop.
func (c *Coordinator) invokeSafe(what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error(what+" panicked",
				"correlation_id", uuid.NewString(),
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
		}
	}()
	fn()
}

// Start begins the periodic refresh loop in a background goroutine.
//
// The first tick fires one interval after Start; the initial fetch is
// expected to have been done with [Coordinator.FirstRefresh]. Start is
// idempotent and a no-op after [Coordinator.Stop].
func (c *Coordinator) Start(ctx context.Context) {
	c.mu.Lock()
	if c.started || c.stopped {
		c.mu.Unlock()
		return
	}
	c.started = true

	if ctx == nil {
		ctx = context.Background()
	}
	loopCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.wg.Add(1)
	c.mu.Unlock()

	c.logger.Info("polling started", "interval", c.interval.String())

	go func() {
		defer c.wg.Done()

		// time.Ticker drops ticks for a slow receiver, so a tick that lands
		// during a fetch is coalesced rather than queued
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticker.C:
				_ = c.Refresh(loopCtx)
			}
		}
	}()
}

// Stop halts the loop, cancels any in-flight fetch and waits for both to
// exit, then discards the cached snapshot. No listener, result hook or
// notification runs after Stop returns. Stop is idempotent and safe to
// call before Start.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	if !c.stopped {
		c.stopped = true
		if c.cancel != nil {
			c.cancel()
		}
		c.lifeCancel()
	}
	c.mu.Unlock()

	c.wg.Wait()
	c.data.Store(nil)
}
