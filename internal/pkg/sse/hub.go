// Package sse fans events out to server-sent event subscribers.
package sse

import (
	"sync"

	"github.com/tscs-kln/tscs-backend-go/internal/pkg/metrics"
)

// bufferSize is the number of undelivered events kept per subscriber.
const bufferSize = 10

// Event is delivered to every subscriber of RecipientID.
type Event struct {
	RecipientID string
	Event       string
	Data        any
}

// Hub manages SSE subscribers keyed by recipient.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a subscriber for recipientID and returns its event
// channel and a cleanup function. Cleanup closes the channel and is safe to
// call more than once.
func (h *Hub) Subscribe(recipientID string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, bufferSize)
	if h.subscribers[recipientID] == nil {
		h.subscribers[recipientID] = make(map[chan Event]struct{})
	}
	h.subscribers[recipientID][ch] = struct{}{}
	metrics.StreamSubscribers.Inc()

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers[recipientID], ch)
			if len(h.subscribers[recipientID]) == 0 {
				delete(h.subscribers, recipientID)
			}
			close(ch)
			metrics.StreamSubscribers.Dec()
		})
	}

	return ch, cleanup
}

// Publish sends event to all subscribers of recipientID. Subscribers whose
// buffer is full miss the event.
func (h *Hub) Publish(recipientID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	event.RecipientID = recipientID
	for ch := range h.subscribers[recipientID] {
		select {
		case ch <- event:
		default:
			metrics.StreamEventsDropped.Inc()
		}
	}
}

// SubscriberCount returns the number of active subscribers for a recipient.
func (h *Hub) SubscriberCount(recipientID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[recipientID])
}

// TotalSubscribers returns the number of active subscribers across all recipients.
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}
