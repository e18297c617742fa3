package event

import (
	"sync"
	"time"
)

// Insert reports one character insertion. The character is already in
// the buffer when the event is published.
type Insert struct {
	// Char is the inserted character.
	Char rune

	// Time is when the insertion happened.
	Time time.Time

	// Cursors is the host's active edit point count at insertion time.
	Cursors int
}

// Listener consumes insert events.
type Listener func(Insert)

// Subscription identifies a registered listener.
type Subscription struct {
	id uint64
}

// IsZero returns true for the zero subscription.
func (s Subscription) IsZero() bool { return s.id == 0 }

type entry struct {
	id       uint64
	listener Listener
}

// Registry holds insert listeners and delivers events to them.
// Registration is guarded so listeners can subscribe from any goroutine,
// but Publish itself is synchronous and must not be called reentrantly.
type Registry struct {
	mu      sync.Mutex
	nextID  uint64
	entries []entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Subscribe registers a listener and returns its subscription.
func (r *Registry) Subscribe(l Listener) Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.entries = append(r.entries, entry{id: r.nextID, listener: l})
	return Subscription{id: r.nextID}
}

// Unsubscribe removes a listener. It returns false if the subscription
// is unknown or already removed.
func (r *Registry) Unsubscribe(sub Subscription) bool {
	if sub.IsZero() {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.entries {
		if e.id == sub.id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of registered listeners.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Publish delivers the event to every listener in subscription order,
// each to completion before the next.
func (r *Registry) Publish(ev Insert) {
	r.mu.Lock()
	listeners := make([]Listener, len(r.entries))
	for i, e := range r.entries {
		listeners[i] = e.listener
	}
	r.mu.Unlock()

	for _, l := range listeners {
		l(ev)
	}
}
