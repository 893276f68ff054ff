package watch

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType identifies a watcher notification.
type EventType uint8

const (
	// EventStartedListening - the watcher transitioned Stopped -> Listening.
	EventStartedListening EventType = iota

	// EventStoppedListening - the watcher transitioned Listening -> Stopped.
	EventStoppedListening

	// EventDeviceDiscovered - an advertisement was resolved and folded into
	// the roster. Fires for every successful resolution.
	EventDeviceDiscovered

	// EventNewDeviceDiscovered - the resolution introduced a previously
	// unseen device. Follows the EventDeviceDiscovered for the same
	// advertisement.
	EventNewDeviceDiscovered

	// EventDeviceNameChanged - the device's non-empty name differs from its
	// prior non-empty name. Follows the EventDeviceDiscovered for the same
	// advertisement.
	EventDeviceNameChanged

	// EventDeviceTimeout - the device aged past the heartbeat timeout and
	// was evicted.
	EventDeviceTimeout
)

// String returns the event type name.
func (e EventType) String() string {
	switch e {
	case EventStartedListening:
		return "STARTED_LISTENING"
	case EventStoppedListening:
		return "STOPPED_LISTENING"
	case EventDeviceDiscovered:
		return "DEVICE_DISCOVERED"
	case EventNewDeviceDiscovered:
		return "NEW_DEVICE_DISCOVERED"
	case EventDeviceNameChanged:
		return "DEVICE_NAME_CHANGED"
	case EventDeviceTimeout:
		return "DEVICE_TIMEOUT"
	default:
		return "UNKNOWN"
	}
}

// Event is a classified watcher notification.
type Event struct {
	// Type is the event type.
	Type EventType

	// Device is set for device-related events, nil for listening
	// transitions.
	Device *Device

	// SessionID identifies the listening session the event belongs to.
	SessionID string

	// Timestamp is when the event was emitted.
	Timestamp time.Time
}

// EventFunc handles watcher events.
type EventFunc func(Event)

// Notifier fans events out to zero or more subscribers. Each subscriber
// drains its own buffered queue on a dedicated goroutine, so a slow or
// panicking subscriber cannot block or crash another - or the watcher.
// Events are delivered to each subscriber in publish order; when a
// subscriber's queue is full, further events for it are dropped until it
// catches up.
type Notifier struct {
	mu     sync.RWMutex
	subs   map[string]*subscriber
	buffer int
	closed bool
}

type subscriber struct {
	queue chan Event
	done  chan struct{}
}

// NewNotifier creates a notifier whose subscribers buffer up to buffer
// undelivered events each.
func NewNotifier(buffer int) *Notifier {
	if buffer <= 0 {
		buffer = DefaultEventBuffer
	}
	return &Notifier{
		subs:   make(map[string]*subscriber),
		buffer: buffer,
	}
}

// Subscribe registers fn and returns an opaque handle for Unsubscribe.
func (n *Notifier) Subscribe(fn EventFunc) string {
	sub := &subscriber{
		queue: make(chan Event, n.buffer),
		done:  make(chan struct{}),
	}

	id := uuid.NewString()

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return id
	}
	n.subs[id] = sub
	n.mu.Unlock()

	go func() {
		defer close(sub.done)
		for event := range sub.queue {
			deliver(fn, event)
		}
	}()

	return id
}

// Unsubscribe removes a subscriber and waits for its queued events to
// drain. Unknown handles are ignored.
func (n *Notifier) Unsubscribe(id string) {
	n.mu.Lock()
	sub, ok := n.subs[id]
	if ok {
		delete(n.subs, id)
		// Publish sends while holding the read lock, so closing here
		// cannot race with a send.
		close(sub.queue)
	}
	n.mu.Unlock()

	if ok {
		<-sub.done
	}
}

// Publish queues the event for every current subscriber.
func (n *Notifier) Publish(event Event) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for _, sub := range n.subs {
		select {
		case sub.queue <- event:
		default:
			// Subscriber queue full: drop rather than block the engine.
		}
	}
}

// Close removes all subscribers, draining their queues. The notifier
// accepts no new subscribers afterwards.
func (n *Notifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	subs := n.subs
	n.subs = make(map[string]*subscriber)
	for _, sub := range subs {
		close(sub.queue)
	}
	n.mu.Unlock()

	for _, sub := range subs {
		<-sub.done
	}
}

// deliver invokes fn, containing any panic to the one delivery.
func deliver(fn EventFunc, event Event) {
	defer func() {
		_ = recover()
	}()
	fn(event)
}
