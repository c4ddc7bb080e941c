package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultCapacity is the number of notifications [Persistent] keeps before
// dropping the oldest.
const DefaultCapacity = 100

// Persistent keeps notifications in memory until they are dismissed.
//
// Persistent is safe for concurrent use.
type Persistent struct {
	mu       sync.RWMutex
	items    []Notification
	capacity int
	now      func() time.Time
}

// NewPersistent creates an empty store holding at most capacity
// notifications. A non-positive capacity means [DefaultCapacity].
func NewPersistent(capacity int) *Persistent {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Persistent{
		capacity: capacity,
		now:      time.Now,
	}
}

// Notify stores n, assigning an ID and timestamp when missing.
func (p *Persistent) Notify(_ context.Context, n Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = p.now()
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.items = append(p.items, n)
	if over := len(p.items) - p.capacity; over > 0 {
		p.items = append([]Notification(nil), p.items[over:]...)
	}
	return nil
}

// List returns a copy of the stored notifications, oldest first.
func (p *Persistent) List() []Notification {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]Notification, len(p.items))
	copy(out, p.items)
	return out
}

// Dismiss removes the notification with the given ID and reports whether
// it existed.
func (p *Persistent) Dismiss(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, n := range p.items {
		if n.ID == id {
			p.items = append(p.items[:i], p.items[i+1:]...)
			return true
		}
	}
	return false
}
