package tracklog

import (
	"log/slog"
	"sync"
)

// EventKind identifies what happened to a session.
type EventKind int

const (
	TrackUpdated EventKind = iota + 1
	StateChanged
	ExportDone
	ExportFailed
)

func (k EventKind) String() string {
	switch k {
	case TrackUpdated:
		return "track_updated"
	case StateChanged:
		return "state_changed"
	case ExportDone:
		return "export_done"
	case ExportFailed:
		return "export_failed"
	default:
		return "unknown"
	}
}

// Event is a fire-and-forget notification about a session.
type Event struct {
	Err    error
	Export *ExportedTrack
	Name   string
	Kind   EventKind
	State  State
	Points int
}

// Observer receives session events. Notify is called with the recorder
// lock held and must not call back into the recorder.
type Observer interface {
	Notify(e Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(e Event)

func (f ObserverFunc) Notify(e Event) {
	f(e)
}

const subscriberBuffer = 64

// Subscription receives events on a buffered channel. When the buffer is
// full, TrackUpdated events are dropped while state and export events
// displace the oldest buffered event.
type Subscription struct {
	C chan Event
}

// Hub fans events out to observers and channel subscribers.
type Hub struct {
	observers []Observer
	subs      map[*Subscription]struct{}
	mu        sync.RWMutex
}

// NewHub returns a hub with no listeners.
func NewHub() *Hub {
	return &Hub{
		subs: make(map[*Subscription]struct{}),
	}
}

// Register adds an observer.
func (h *Hub) Register(o Observer) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.observers = append(h.observers, o)
}

// Subscribe returns a new channel subscription.
func (h *Hub) Subscribe() *Subscription {
	sub := &Subscription{C: make(chan Event, subscriberBuffer)}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.subs[sub] = struct{}{}

	return sub
}

// Unsubscribe removes sub and closes its channel.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subs[sub]; !ok {
		return
	}

	delete(h.subs, sub)
	close(sub.C)
}

// Notify delivers e to every observer and subscriber.
func (h *Hub) Notify(e Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, o := range h.observers {
		o.Notify(e)
	}

	for sub := range h.subs {
		deliver(sub, e)
	}
}

func deliver(sub *Subscription, e Event) {
	select {
	case sub.C <- e:
		return
	default:
	}

	if e.Kind == TrackUpdated {
		logDropped(e)
		return
	}

	select {
	case old := <-sub.C:
		logDropped(old)
	default:
	}

	select {
	case sub.C <- e:
	default:
		logDropped(e)
	}
}

func logDropped(e Event) {
	slog.Debug(
		"subscriber buffer full, dropping event",
		slog.String("kind", e.Kind.String()),
		slog.String("name", e.Name),
	)
}
