package store

import (
	"maps"
	"slices"
	"strings"
	"sync"
)

// subscriberBuffer is the channel buffer per subscriber.
const subscriberBuffer = 100

// MemoryStore is an in-memory implementation of [Store].
//
// States are keyed by unique ID, with new states replacing previous values.
// Subscribers receive updates via buffered channels. Sends are non-blocking;
// a full buffer drops the update for that subscriber only.
type MemoryStore struct {
	mu          sync.RWMutex
	states      map[string]EntityState
	subscribers map[chan EntityState]struct{}
	subMu       sync.RWMutex
}

// NewMemoryStore creates a new in-memory [Store] implementation.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		states:      make(map[string]EntityState),
		subscribers: make(map[chan EntityState]struct{}),
	}
}

// Update stores an [EntityState] and notifies all subscribers.
//
// The attribute map is copied so later changes by the caller are not seen.
func (m *MemoryStore) Update(state EntityState) {
	state.Attributes = maps.Clone(state.Attributes)

	m.mu.Lock()
	m.states[state.UniqueID] = state
	m.mu.Unlock()

	m.notifySubscribers(state)
}

// Get returns the state stored under uniqueID.
func (m *MemoryStore) Get(uniqueID string) (EntityState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.states[uniqueID]
	return s, ok
}

// GetAll returns a snapshot of all stored states, sorted by unique ID.
func (m *MemoryStore) GetAll() []EntityState {
	m.mu.RLock()
	results := make([]EntityState, 0, len(m.states))
	for _, s := range m.states {
		results = append(results, s)
	}
	m.mu.RUnlock()

	slices.SortFunc(results, func(a, b EntityState) int {
		return strings.Compare(a.UniqueID, b.UniqueID)
	})
	return results
}

// Reset drops every stored state. Subscriptions are kept.
func (m *MemoryStore) Reset() {
	m.mu.Lock()
	clear(m.states)
	m.mu.Unlock()
}

// Subscribe creates a new subscription and returns a channel for receiving updates.
//
// Caller must call [MemoryStore.Unsubscribe] when done to prevent resource leaks.
func (m *MemoryStore) Subscribe() <-chan EntityState {
	ch := make(chan EntityState, subscriberBuffer)

	m.subMu.Lock()
	m.subscribers[ch] = struct{}{}
	m.subMu.Unlock()

	return ch
}

// Unsubscribe removes a subscription and closes its channel.
// Safe to call multiple times or with an unknown channel.
func (m *MemoryStore) Unsubscribe(ch <-chan EntityState) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	// map keys are bidirectional channels, so compare rather than index
	for subCh := range m.subscribers {
		if subCh == ch {
			delete(m.subscribers, subCh)
			close(subCh)
			break
		}
	}
}

func (m *MemoryStore) notifySubscribers(state EntityState) {
	m.subMu.RLock()
	defer m.subMu.RUnlock()

	for ch := range m.subscribers {
		select {
		case ch <- state:
		default:
			// subscriber is slow, drop the message
		}
	}
}
