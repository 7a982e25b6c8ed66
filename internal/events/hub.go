// Package events fans ledger changes out to live trip watchers.
package events

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mmynk/tripsplit/internal/metrics"
	"github.com/mmynk/tripsplit/internal/models"
)

// DefaultBuffer is the per-subscriber channel capacity used when none is configured.
const DefaultBuffer = 16

type subscriber struct {
	ch chan models.Event
}

// Hub delivers each published event to every subscriber of the event's trip.
// Publish never blocks: a subscriber whose buffer is full misses the event.
type Hub struct {
	mu      sync.RWMutex
	subs    map[string]map[*subscriber]struct{}
	buffer  int
	metrics *metrics.Metrics
}

// NewHub creates a Hub. m may be nil.
func NewHub(buffer int, m *metrics.Metrics) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{
		subs:    make(map[string]map[*subscriber]struct{}),
		buffer:  buffer,
		metrics: m,
	}
}

// Subscribe registers interest in a trip. The returned cancel func unregisters and
// closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe(tripID string) (<-chan models.Event, func()) {
	sub := &subscriber{ch: make(chan models.Event, h.buffer)}

	h.mu.Lock()
	if h.subs[tripID] == nil {
		h.subs[tripID] = make(map[*subscriber]struct{})
	}
	h.subs[tripID][sub] = struct{}{}
	h.mu.Unlock()

	slog.Debug("Watcher subscribed", "trip_id", tripID)

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs[tripID], sub)
			if len(h.subs[tripID]) == 0 {
				delete(h.subs, tripID)
			}
			close(sub.ch)
			slog.Debug("Watcher unsubscribed", "trip_id", tripID)
		})
	}
	return sub.ch, cancel
}

// Publish implements settlement.EventSink.
func (h *Hub) Publish(_ context.Context, event models.Event) {
	h.metrics.EventPublished(string(event.Action))

	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs[event.TripID] {
		select {
		case sub.ch <- event:
		default:
			h.metrics.EventDropped()
			slog.Warn("Dropped event for slow watcher", "trip_id", event.TripID, "action", event.Action)
		}
	}
}

// Subscribers reports how many watchers a trip has.
func (h *Hub) Subscribers(tripID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[tripID])
}
