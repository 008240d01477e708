package events

import (
	"context"
	"errors"
	"sync"
)

// ErrBridgeClosed is returned by Send once the consumer has gone away and by
// Receive after Close.
var ErrBridgeClosed = errors.New("event bridge closed")

// Bridge is an unbounded FIFO of events with one producer and one consumer.
// Send never blocks. Receive blocks until an event is queued or ctx ends.
type Bridge struct {
	mu     sync.Mutex
	queue  []Event
	closed bool
	ready  chan struct{}
}

// NewBridge returns an empty, open bridge.
func NewBridge() *Bridge {
	return &Bridge{ready: make(chan struct{}, 1)}
}

// Send enqueues event for the consumer.
func (b *Bridge) Send(event Event) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrBridgeClosed
	}
	b.queue = append(b.queue, event)
	b.mu.Unlock()

	select {
	case b.ready <- struct{}{}:
	default:
	}
	return nil
}

// Receive returns the oldest queued event, waiting for one if necessary.
func (b *Bridge) Receive(ctx context.Context) (Event, error) {
	for {
		b.mu.Lock()
		if len(b.queue) > 0 {
			event := b.queue[0]
			b.queue[0] = Event{}
			b.queue = b.queue[1:]
			b.mu.Unlock()
			return event, nil
		}
		if b.closed {
			b.mu.Unlock()
			return Event{}, ErrBridgeClosed
		}
		b.mu.Unlock()

		select {
		case <-b.ready:
		case <-ctx.Done():
			return Event{}, ctx.Err()
		}
	}
}

// Close marks the consumer as gone and discards queued events. Safe to call
// more than once.
func (b *Bridge) Close() {
	b.mu.Lock()
	b.closed = true
	b.queue = nil
	b.mu.Unlock()

	select {
	case b.ready <- struct{}{}:
	default:
	}
}

// Len reports the number of queued events.
func (b *Bridge) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue)
}
