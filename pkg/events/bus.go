package events

import (
	"sync"
	"time"
)

// Handler receives published events.
type Handler func(Event)

type subscription struct {
	id      uint64
	handler Handler
}

// Bus fans events out to subscribers. Handlers run synchronously on the
// publisher's goroutine, in subscription order.
type Bus struct {
	// Name for logging
	name string

	mu     sync.RWMutex
	subs   map[Topic][]subscription
	nextID uint64

	// published counts events per topic
	published map[Topic]uint64

	now func() time.Time
}

// New creates a new Bus.
func New(name string) *Bus {
	return &Bus{
		name:      name,
		subs:      make(map[Topic][]subscription),
		published: make(map[Topic]uint64),
		now:       time.Now,
	}
}

// Name returns the bus name.
func (b *Bus) Name() string {
	return b.name
}

// Subscribe registers h for topic and returns a function that removes it.
func (b *Bus) Subscribe(topic Topic, h Handler) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscription{id: id, handler: h})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(topic, id) })
	}
}

// SubscribeAll registers h for every topic in topics.
func (b *Bus) SubscribeAll(h Handler, topics ...Topic) (unsubscribe func()) {
	cancels := make([]func(), 0, len(topics))
	for _, t := range topics {
		cancels = append(cancels, b.Subscribe(t, h))
	}
	return func() {
		for _, c := range cancels {
			c()
		}
	}
}

func (b *Bus) remove(topic Topic, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.subs[topic]
	for i, s := range subs {
		if s.id == id {
			b.subs[topic] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Publish delivers payload to every subscriber of topic. A nil bus is a
// no-op, so callers can publish unconditionally.
func (b *Bus) Publish(topic Topic, payload any) {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.published[topic]++
	// Snapshot so handlers may subscribe or unsubscribe re-entrantly.
	subs := make([]subscription, len(b.subs[topic]))
	copy(subs, b.subs[topic])
	b.mu.Unlock()

	ev := Event{Topic: topic, Time: b.now(), Payload: payload}
	for _, s := range subs {
		s.handler(ev)
	}
}

// SubscriberCount returns the number of handlers registered for topic.
func (b *Bus) SubscriberCount(topic Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}

// Published returns how many events were published on topic.
func (b *Bus) Published(topic Topic) uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.published[topic]
}
