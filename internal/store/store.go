package store

import "time"

// EntityState is the storage representation of one sensor entity.
//
// It is what the REST API and SSE stream serve. It is decoupled from the
// sensor types so the wire format does not follow internal changes.
type EntityState struct {
	// UniqueID is the stable entity identity and the store key.
	UniqueID string `json:"unique_id"`

	// EntryID is the tracked entry the entity belongs to.
	EntryID string `json:"entry_id"`

	Name          string            `json:"name"`
	State         string            `json:"state"`
	DeviceClass   string            `json:"device_class"`
	Icon          string            `json:"icon,omitempty"`
	EntityPicture string            `json:"entity_picture,omitempty"`
	Attributes    map[string]string `json:"attributes"`

	// Device is the display name of the device grouping the entity.
	Device string `json:"device"`

	// Available is false when the most recent refresh failed; the state is
	// then the last good value.
	Available bool `json:"available"`

	// UpdatedAt is when the state was last published.
	UpdatedAt time.Time `json:"updated_at"`

	// Error holds the most recent refresh error, if any.
	Error *string `json:"error"`
}

// Store defines the interface for storing and subscribing to entity states.
//
// Store implementations must be safe for concurrent access.
type Store interface {
	// Update stores a state keyed by UniqueID and notifies all subscribers.
	Update(state EntityState)

	// Get returns the state for uniqueID.
	Get(uniqueID string) (EntityState, bool)

	// GetAll returns all stored states sorted by UniqueID.
	// The returned slice is a snapshot; modifications do not affect the store.
	GetAll() []EntityState

	// Subscribe returns a channel that receives state updates.
	// The returned channel has a buffer; slow consumers may miss updates.
	// Caller must call Unsubscribe when done to prevent resource leaks.
	Subscribe() <-chan EntityState

	// Unsubscribe removes a subscription and closes the channel.
	// Safe to call with a channel that was already unsubscribed.
	Unsubscribe(ch <-chan EntityState)
}
