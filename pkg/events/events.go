package events

import (
	"sync"
	"time"

	"github.com/cuemby/opcua-core/pkg/types"
)

// Type discriminates the kind of operational occurrence an Event carries.
type Type string

const (
	TypeNodeAdded        Type = "node.added"
	TypeNodeDeleted      Type = "node.deleted"
	TypeRepeatedJobFired Type = "repeated_job.fired"
	TypeServerStarted    Type = "server.started"
	TypeServerStopped    Type = "server.stopped"
	TypeWorkerPanic      Type = "worker.panic"
)

// Event is one operational occurrence published to the bus.
type Event struct {
	Type      Type
	Timestamp time.Time
	NodeId    types.NodeId
	Message   string
}

// Subscriber is a channel an embedder reads events from.
type Subscriber chan Event

// Broker distributes published events to every current subscriber. A slow
// or absent subscriber never blocks Publish: events are dropped for a
// subscriber whose buffer is full rather than stalling the whole broker.
type Broker struct {
	mu          sync.RWMutex
	subscribers map[Subscriber]bool
	eventCh     chan Event
	stopCh      chan struct{}
}

// NewBroker returns a Broker with a 100-event internal buffer.
func NewBroker() *Broker {
	return &Broker{
		subscribers: make(map[Subscriber]bool),
		eventCh:     make(chan Event, 100),
		stopCh:      make(chan struct{}),
	}
}

// Start begins the broker's distribution loop in its own goroutine.
func (b *Broker) Start() {
	go b.run()
}

// Stop halts the distribution loop. Subscribers are not closed, since a
// caller may still want to drain what's already buffered in them.
func (b *Broker) Stop() {
	close(b.stopCh)
}

// Subscribe returns a new Subscriber with a 50-event buffer.
func (b *Broker) Subscribe() Subscriber {
	b.mu.Lock()
	defer b.mu.Unlock()
	sub := make(Subscriber, 50)
	b.subscribers[sub] = true
	return sub
}

// Unsubscribe removes sub and closes it.
func (b *Broker) Unsubscribe(sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subscribers, sub)
	close(sub)
}

// Publish queues event for distribution to every current subscriber. If
// ev.Timestamp is zero it is set to now.
func (b *Broker) Publish(ev Event) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	select {
	case b.eventCh <- ev:
	case <-b.stopCh:
	}
}

func (b *Broker) run() {
	for {
		select {
		case ev := <-b.eventCh:
			b.broadcast(ev)
		case <-b.stopCh:
			return
		}
	}
}

func (b *Broker) broadcast(ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for sub := range b.subscribers {
		select {
		case sub <- ev:
		default:
		}
	}
}

// SubscriberCount returns the number of active subscribers.
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
