package notify

import (
	"sync"
	"time"
)

// Event is one data-changed broadcast: some entity collection was written
// and other views should refresh.
type Event struct {
	Type      string    `json:"type"`   // entity kind ("hero", "services", "import", ...)
	Action    string    `json:"action"` // "update", "overwrite", "merge", "restore"
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Bus is a synchronous in-process publish/subscribe channel for Events.
//
// Dispatch is synchronous and in subscription order: when Publish returns,
// every subscriber has run, so a subscriber re-reading the store observes
// the state the event describes. No delivery guarantees beyond that.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   []subscription
}

type subscription struct {
	id int
	fn func(Event)
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns its unsubscribe function.
func (b *Bus) Subscribe(fn func(Event)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subs = append(b.subs, subscription{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, sub := range b.subs {
			if sub.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish stamps the event and delivers it to every subscriber.
func (b *Bus) Publish(e Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	b.mu.Lock()
	handlers := make([]func(Event), 0, len(b.subs))
	for _, sub := range b.subs {
		handlers = append(handlers, sub.fn)
	}
	b.mu.Unlock()

	for _, fn := range handlers {
		fn(e)
	}
}
