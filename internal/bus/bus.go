package bus

import (
	"sync"

	"github.com/google/uuid"
)

// Event is a named change notification. Every store mutation publishes
// one so mounted views re-derive what they display without a reload.
type Event struct {
	// Topic names what changed, e.g. "overrides.images.changed".
	Topic string
	// Key optionally narrows the change to one entity (article ID or
	// topic key). Empty means "anything under this topic".
	Key string
}

// Handler receives events synchronously on the publisher's goroutine.
// Handlers must be quick and must not publish re-entrantly.
type Handler func(Event)

// Bus is a synchronous in-process publish/subscribe channel for change
// notifications.
type Bus struct {
	mu     sync.RWMutex
	subs   map[string]map[string]Handler // topic → subscription ID → handler
	topics map[string]string             // subscription ID → topic
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{
		subs:   make(map[string]map[string]Handler),
		topics: make(map[string]string),
	}
}

// Subscribe registers a handler for a topic and returns a subscription
// token for Unsubscribe. Cleanup on teardown is mandatory; a leaked
// subscription keeps its handler reachable forever.
func (b *Bus) Subscribe(topic string, fn Handler) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.New().String()
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[string]Handler)
	}
	b.subs[topic][id] = fn
	b.topics[id] = topic
	return id
}

// Unsubscribe removes a subscription. Unknown tokens are ignored.
func (b *Bus) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	topic, ok := b.topics[id]
	if !ok {
		return
	}
	delete(b.topics, id)
	delete(b.subs[topic], id)
	if len(b.subs[topic]) == 0 {
		delete(b.subs, topic)
	}
}

// Publish delivers the event to every subscriber of its topic, in
// unspecified order, before returning.
func (b *Bus) Publish(evt Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs[evt.Topic]))
	for _, fn := range b.subs[evt.Topic] {
		handlers = append(handlers, fn)
	}
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn(evt)
	}
}

// SubscriberCount reports how many handlers a topic has (stats endpoint).
func (b *Bus) SubscriberCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}
