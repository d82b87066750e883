// Package events provides in-process pub/sub for cross-view refresh. Views
// subscribe to the named events below and re-fetch their data when notified;
// the bus itself only relays.
package events

import "sync"

// Events published in this system.
const (
	EventProductCreated = "product:created"
	EventProductUpdated = "product:updated"
	EventProductDeleted = "product:deleted"

	EventSaleCreated = "sale:created"

	EventServiceCreated = "service:created"
	EventServiceUpdated = "service:updated"
	EventServiceDeleted = "service:deleted"

	EventClientCreated = "client:created"
	EventClientUpdated = "client:updated"

	EventDataUpdated = "data:updated"
)

// Handler receives the payload of an emitted event.
type Handler func(payload any)

type subscription struct {
	id      uint64
	handler Handler
}

// Bus relays events synchronously to current subscribers.
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[string][]subscription
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string][]subscription)}
}

// Subscription identifies one registered handler so it can be removed later.
type Subscription struct {
	event string
	id    uint64
}

// Subscribe registers a handler for an event and returns the token that
// removes exactly that registration.
func (b *Bus) Subscribe(event string, handler Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.subs[event] = append(b.subs[event], subscription{id: b.nextID, handler: handler})
	return Subscription{event: event, id: b.nextID}
}

// Unsubscribe removes a previous registration. Unknown or already removed
// tokens are ignored.
func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers := b.subs[sub.event]
	for i := range handlers {
		if handlers[i].id == sub.id {
			b.subs[sub.event] = append(handlers[:i], handlers[i+1:]...)
			return
		}
	}
}

// Emit synchronously invokes every handler currently subscribed to the
// event, then returns. Handlers run outside the bus lock, so they may
// subscribe or unsubscribe; registrations made during an emission are not
// guaranteed to see that same emission.
func (b *Bus) Emit(event string, payload any) {
	b.mu.Lock()
	handlers := make([]Handler, 0, len(b.subs[event]))
	for _, sub := range b.subs[event] {
		handlers = append(handlers, sub.handler)
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h(payload)
	}
}
