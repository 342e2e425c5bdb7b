package auth

import (
	"sync"

	"github.com/dishly-app/dishly/internal/domain"
)

// EventKind names an authentication-state transition.
type EventKind int

const (
	// EventAuthenticated fires after a successful login, signup, or
	// session restore.
	EventAuthenticated EventKind = iota
	// EventSignedOut fires after logout or a failed restore.
	EventSignedOut
)

// String implements fmt.Stringer for log lines.
func (k EventKind) String() string {
	switch k {
	case EventAuthenticated:
		return "authenticated"
	case EventSignedOut:
		return "signed-out"
	default:
		return "unknown"
	}
}

// Event is an authentication-state change. User is nil for signed-out
// events and may be nil when the backend could not be reached to verify.
type Event struct {
	Kind EventKind
	User *domain.User
}

// Events is a typed broadcast of authentication-state changes. Subscribers
// get their own buffered channel; a slow subscriber drops events rather
// than blocking the publisher.
type Events struct {
	mu   sync.Mutex
	subs []chan Event
}

// NewEvents creates an empty broadcast.
func NewEvents() *Events {
	return &Events{}
}

// Subscribe registers a new listener. The channel is never closed.
func (e *Events) Subscribe() <-chan Event {
	e.mu.Lock()
	defer e.mu.Unlock()

	ch := make(chan Event, 8)
	e.subs = append(e.subs, ch)
	return ch
}

// Publish delivers an event to every subscriber without blocking.
func (e *Events) Publish(ev Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, ch := range e.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
