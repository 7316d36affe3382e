package events

import (
	"sync"
	"time"
)

// DataChanged is the single coarse invalidation signal the portal uses: it
// carries no diff, only the mutation timestamp. Listeners are expected to
// re-fetch whatever subset they care about.
type DataChanged struct {
	Timestamp time.Time `json:"timestamp"`
}

// Handler consumes change events.
type Handler func(ev DataChanged)

// Subscription allows a listener to detach from the bus.
type Subscription interface {
	Unsubscribe()
}

/*
 * 'Bus' is the in-process fan-out for DataChanged. Publishing never blocks the
 * mutating caller: events are queued on a buffered channel and dispatched from
 * a single goroutine, so listeners observe events in publish order.
 */
type Bus struct {
	mu          sync.RWMutex
	subscribers map[int]Handler
	nextID      int
	buffer      chan DataChanged
	done        chan struct{}
}

// NewBus creates a bus with the given queue capacity and starts its dispatch
// loop.
func NewBus(capacity int) *Bus {
	b := &Bus{
		subscribers: make(map[int]Handler),
		buffer:      make(chan DataChanged, capacity),
		done:        make(chan struct{}),
	}
	go b.dispatchLoop()
	return b
}

// Publish enqueues a change event. When the queue is full the event is
// dropped; a later event carries the same "something changed" meaning.
func (b *Bus) Publish(ev DataChanged) {
	select {
	case b.buffer <- ev:
	default:
	}
}

// Subscribe registers a handler for every future event.
func (b *Bus) Subscribe(h Handler) Subscription {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subscribers[id] = h
	b.mu.Unlock()
	return &busSub{bus: b, id: id}
}

// Close stops the dispatch loop. Pending events are discarded.
func (b *Bus) Close() {
	close(b.done)
}

func (b *Bus) dispatchLoop() {
	for {
		select {
		case <-b.done:
			return
		case ev := <-b.buffer:
			b.mu.RLock()
			handlers := make([]Handler, 0, len(b.subscribers))
			for _, h := range b.subscribers {
				handlers = append(handlers, h)
			}
			b.mu.RUnlock()
			for _, h := range handlers {
				h(ev)
			}
		}
	}
}

type busSub struct {
	bus *Bus
	id  int
}

func (s *busSub) Unsubscribe() {
	s.bus.mu.Lock()
	delete(s.bus.subscribers, s.id)
	s.bus.mu.Unlock()
}
