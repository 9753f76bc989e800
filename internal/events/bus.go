package events

import (
	"context"
	"log/slog"
	"sync"
)

// Publisher is the narrow interface producers depend on.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// subscription is a buffered channel plus an optional filter.
type subscription struct {
	ch     chan Event
	filter func(Event) bool
	closed bool // guarded by Bus.mu
}

func (s *subscription) close() {
	s.closed = true
	close(s.ch)
}

// Bus is the in-process pub/sub hub for playback and resolve events.
// Delivery is non-blocking: a full subscriber drops the event.
type Bus struct {
	mu     sync.RWMutex
	byType map[string][]*subscription // eventType -> subscriptions
	all    []*subscription            // subscriptions to every event
	log    *EventLog                  // SQLite persistence (may be nil)
	logger *slog.Logger
	closed bool
}

// NewBus creates a new event bus.
// The EventLog is optional - pass nil to disable persistence.
func NewBus(log *EventLog, logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		byType: make(map[string][]*subscription),
		log:    log,
		logger: logger,
	}
}

// Publish persists e (when a log is attached) and fans it out.
func (b *Bus) Publish(ctx context.Context, e Event) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return nil
	}
	subs := make([]*subscription, 0, len(b.byType[e.EventType()])+len(b.all))
	subs = append(subs, b.byType[e.EventType()]...)
	subs = append(subs, b.all...)
	b.mu.RUnlock()

	if b.log != nil {
		if _, err := b.log.Append(e); err != nil {
			// Delivery matters more than persistence.
			b.logger.Error("failed to persist event", "type", e.EventType(), "error", err)
		}
	}

	for _, s := range subs {
		if s.filter != nil && !s.filter(e) {
			continue
		}
		b.deliver(s, e)
	}
	return nil
}

func (b *Bus) deliver(s *subscription, e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed || s.closed {
		return
	}
	select {
	case s.ch <- e:
	default:
		b.logger.Warn("subscriber channel full, dropping event",
			"type", e.EventType(),
			"entity_type", e.EntityType(),
			"entity_id", e.EntityID())
	}
}

// Subscribe returns a channel for events of a specific type.
func (b *Bus) Subscribe(eventType string, bufferSize int) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := &subscription{ch: make(chan Event, bufferSize)}
	b.byType[eventType] = append(b.byType[eventType], s)
	return s.ch
}

// SubscribeAll returns a channel for all events.
func (b *Bus) SubscribeAll(bufferSize int) <-chan Event {
	return b.subscribeFiltered(nil, bufferSize)
}

// SubscribeEntity returns events for a specific entity, e.g. ("movie", "local/42").
func (b *Bus) SubscribeEntity(entityType, entityID string, bufferSize int) <-chan Event {
	return b.subscribeFiltered(func(e Event) bool {
		return e.EntityType() == entityType && e.EntityID() == entityID
	}, bufferSize)
}

func (b *Bus) subscribeFiltered(filter func(Event) bool, bufferSize int) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := &subscription{ch: make(chan Event, bufferSize), filter: filter}
	b.all = append(b.all, s)
	return s.ch
}

// Unsubscribe removes a subscription channel and closes it.
func (b *Bus) Unsubscribe(ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for eventType, subs := range b.byType {
		for i, s := range subs {
			if s.ch == ch {
				b.byType[eventType] = append(subs[:i], subs[i+1:]...)
				s.close()
				return
			}
		}
	}
	for i, s := range b.all {
		if s.ch == ch {
			b.all = append(b.all[:i], b.all[i+1:]...)
			s.close()
			return
		}
	}
}

// Close shuts down the bus and closes all subscriber channels.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for _, subs := range b.byType {
		for _, s := range subs {
			s.close()
		}
	}
	b.byType = nil

	for _, s := range b.all {
		s.close()
	}
	b.all = nil
	return nil
}
