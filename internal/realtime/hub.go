// Package realtime fans persisted notifications out to connected clients.
// Delivery is best effort: the database row is the source of truth and a
// client that misses a push catches up from the notification list.
package realtime

import (
	"sync"

	"github.com/google/uuid"
)

const (
	EventInit         = "INIT"
	EventNotification = "NOTIFICATION"
)

type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// Hub keeps one channel per connected user. A new connection for the same
// user replaces the old one.
type Hub struct {
	mu      sync.Mutex
	clients map[uuid.UUID]chan Event
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[uuid.UUID]chan Event),
	}
}

// Register creates a buffered event channel for the user and returns it.
// Any previous channel for the same user is closed and dropped.
func (h *Hub) Register(userID uuid.UUID) chan Event {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, ok := h.clients[userID]; ok {
		close(old)
	}

	ch := make(chan Event, 16)
	h.clients[userID] = ch
	return ch
}

// Unregister drops the user's channel if it is still the one passed in.
// A stale channel from a replaced connection is ignored.
func (h *Hub) Unregister(userID uuid.UUID, ch chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, ok := h.clients[userID]; ok && current == ch {
		delete(h.clients, userID)
		close(current)
	}
}

// Push delivers an event to the user if connected. It never blocks: when the
// buffer is full the event is dropped and the channel removed, forcing the
// client to reconnect and resync.
func (h *Hub) Push(userID uuid.UUID, event Event) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch, ok := h.clients[userID]
	if !ok {
		return false
	}

	select {
	case ch <- event:
		return true
	default:
		delete(h.clients, userID)
		close(ch)
		return false
	}
}

// Connected reports whether the user currently has a registered channel.
func (h *Hub) Connected(userID uuid.UUID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	_, ok := h.clients[userID]
	return ok
}
