package live

import (
	"sync"
	"time"
)

type Event struct {
	Type    string    `json:"type"`
	Payload any       `json:"payload"`
	At      time.Time `json:"at"`
}

// Hub is the process-wide publish/subscribe channel behind the admin live
// stream. Delivery is at-most-once per subscriber per publish; subscribers
// that connect after a publish miss it, and slow subscribers drop events
// rather than block the publisher. Construct one in main and inject it.
type Hub struct {
	mu   sync.Mutex
	subs map[int64]chan Event
	next int64
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int64]chan Event)}
}

func (h *Hub) Publish(eventType string, payload any) {
	ev := Event{Type: eventType, Payload: payload, At: time.Now()}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribe registers a listener and returns its channel plus an
// unsubscribe func. The channel is never closed; callers stop reading after
// unsubscribing.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)
	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = ch
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
