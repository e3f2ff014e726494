// Package broadcast fans state snapshots out to subscribers. Each subscriber owns a bounded
// queue; when it is full the oldest event is dropped so a slow reader never blocks the publisher.
package broadcast

import (
	"sync"
	"sync/atomic"

	"github.com/border-traffic-monitor/internal/domain"
	"github.com/border-traffic-monitor/internal/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultBufferSize = 16

// Hub - реестр подписчиков и точка публикации снапшотов
type Hub struct {
	mu          sync.RWMutex
	publishMu   sync.Mutex
	subscribers map[uuid.UUID]*Subscription
	bufferSize  int
	closed      bool
	logger      *zap.Logger
}

// NewHub creates a hub whose subscribers buffer up to bufferSize events.
func NewHub(bufferSize int, logger *zap.Logger) *Hub {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	return &Hub{
		subscribers: make(map[uuid.UUID]*Subscription),
		bufferSize:  bufferSize,
		logger:      logger,
	}
}

// Subscription - дескриптор подписки
type Subscription struct {
	id       uuid.UUID
	hub      *Hub
	events   chan domain.TrafficUpdateEvent
	mu       sync.RWMutex
	crossing domain.CrossingPoint
	dropped  atomic.Uint64
}

// ID returns the subscription handle.
func (s *Subscription) ID() uuid.UUID {
	return s.id
}

// Events is closed when the subscription is removed.
func (s *Subscription) Events() <-chan domain.TrafficUpdateEvent {
	return s.events
}

// Crossing returns the current scope; empty means every crossing.
func (s *Subscription) Crossing() domain.CrossingPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.crossing
}

// SetCrossing rescopes the subscription for future events.
func (s *Subscription) SetCrossing(c domain.CrossingPoint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.crossing = c
}

// Dropped counts events discarded because the queue was full.
func (s *Subscription) Dropped() uint64 {
	return s.dropped.Load()
}

// Close unsubscribes. Safe to call more than once.
func (s *Subscription) Close() {
	s.hub.Unsubscribe(s.id)
}

// offer enqueues without blocking, evicting the oldest queued event when full.
// Only the hub's publisher calls it, so at most one sender is active.
func (s *Subscription) offer(ev domain.TrafficUpdateEvent) {
	for {
		select {
		case s.events <- ev:
			return
		default:
		}

		select {
		case <-s.events:
			s.dropped.Add(1)
			metrics.EventsDropped.Inc()
		default:
		}
	}
}

// Subscribe registers interest, optionally scoped to one crossing. On a closed hub the
// returned subscription's channel is already closed.
func (h *Hub) Subscribe(crossing domain.CrossingPoint) *Subscription {
	sub := &Subscription{
		id:       uuid.New(),
		hub:      h,
		events:   make(chan domain.TrafficUpdateEvent, h.bufferSize),
		crossing: crossing,
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		close(sub.events)
		return sub
	}

	h.subscribers[sub.id] = sub
	metrics.Subscribers.Inc()
	h.logger.Debug("Subscriber registered",
		zap.String("subscription_id", sub.id.String()),
		zap.String("crossing_point", string(crossing)))
	return sub
}

// Unsubscribe removes a subscription and closes its channel. Returns false if it was not registered.
func (h *Hub) Unsubscribe(id uuid.UUID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub, ok := h.subscribers[id]
	if !ok {
		return false
	}
	delete(h.subscribers, id)
	close(sub.events)
	metrics.Subscribers.Dec()

	h.logger.Debug("Subscriber removed", zap.String("subscription_id", id.String()))
	return true
}

// Publish delivers snap to every subscriber whose scope matches and returns how many received it.
// It never blocks on a subscriber.
func (h *Hub) Publish(snap *domain.Snapshot) int {
	h.publishMu.Lock()
	defer h.publishMu.Unlock()

	h.mu.RLock()
	defer h.mu.RUnlock()

	full := domain.NewTrafficUpdateEvent(snap, "")
	delivered := 0
	for _, sub := range h.subscribers {
		crossing := sub.Crossing()
		ev := full
		if crossing != "" {
			ev = domain.NewTrafficUpdateEvent(snap, crossing)
			if len(ev.Data) == 0 {
				continue
			}
		}
		sub.offer(ev)
		delivered++
	}
	return delivered
}

// Count returns the number of active subscribers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Close removes every subscriber; later Subscribe calls get closed subscriptions.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, sub := range h.subscribers {
		delete(h.subscribers, id)
		close(sub.events)
		metrics.Subscribers.Dec()
	}
	h.logger.Info("Broadcast hub closed")
}
