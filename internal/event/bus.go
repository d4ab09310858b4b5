// Package event carries collection-change notifications from the route
// synchronizer to presentation subscribers.
package event

import (
	"sync"

	"bigtrip/internal/domain/models"
)

// Kind classifies a collection change.
type Kind string

const (
	KindCreated  Kind = "CREATED"
	KindUpdated  Kind = "UPDATED"
	KindDeleted  Kind = "DELETED"
	KindRollback Kind = "ROLLBACK"
)

// Event is the notification payload. Point is set for CREATED/UPDATED, ID for
// DELETED/ROLLBACK, PrevID when a create confirmation re-keys a temporary
// point, Err on ROLLBACK.
type Event struct {
	Kind   Kind
	Point  *models.Point
	ID     string
	PrevID string
	Err    error
}

// Observer receives events synchronously, in registration order.
type Observer func(Event)

// Bus is a synchronous observer registry. Emit invokes every observer before
// returning, so a subscriber always sees a fully settled collection state.
type Bus struct {
	mu        sync.Mutex
	nextID    int
	observers []subscription
}

type subscription struct {
	id int
	fn Observer
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers an observer and returns its subscription id.
func (b *Bus) Subscribe(fn Observer) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.observers = append(b.observers, subscription{id: b.nextID, fn: fn})
	return b.nextID
}

// Unsubscribe removes a previously registered observer. Unknown ids are a
// no-op.
func (b *Bus) Unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, sub := range b.observers {
		if sub.id == id {
			b.observers = append(b.observers[:i], b.observers[i+1:]...)
			return
		}
	}
}

// Emit delivers the event to every observer in registration order.
func (b *Bus) Emit(evt Event) {
	b.mu.Lock()
	snapshot := make([]subscription, len(b.observers))
	copy(snapshot, b.observers)
	b.mu.Unlock()

	for _, sub := range snapshot {
		sub.fn(evt)
	}
}
