// Package hub fans rendered HTML fragments out to every connected live page.
package hub

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
)

// ErrStopped is returned by Publish after Run has returned.
var ErrStopped = errors.New("hub stopped")

// Subscriber is one live page. The hub sends fragments on Send and closes it
// when the subscriber is dropped or the hub stops.
type Subscriber struct {
	// Send is a buffered channel of outbound fragments. The client is
	// responsible for draining it.
	Send chan []byte
}

// NewSubscriber creates a Subscriber with the given send buffer size.
func NewSubscriber(buffer int) *Subscriber {
	return &Subscriber{Send: make(chan []byte, buffer)}
}

// Hub maintains the set of active subscribers and broadcasts fragments to them.
type Hub struct {
	subscribers map[*Subscriber]bool
	count       atomic.Int64

	// Broadcast delivers a fragment to every subscriber.
	Broadcast chan []byte
	// Register adds a subscriber.
	Register chan *Subscriber
	// Unregister removes a subscriber and closes its Send channel.
	Unregister chan *Subscriber

	done chan struct{}
}

// NewHub creates and returns a new Hub instance.
func NewHub() *Hub {
	return &Hub{
		Broadcast:   make(chan []byte),
		Register:    make(chan *Subscriber),
		Unregister:  make(chan *Subscriber),
		subscribers: make(map[*Subscriber]bool),
		done:        make(chan struct{}),
	}
}

// Count returns the number of registered subscribers.
func (h *Hub) Count() int {
	return int(h.count.Load())
}

// Run processes the hub's channels until ctx is done, then closes every
// remaining subscriber. It must run in its own goroutine.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		for subscriber := range h.subscribers {
			h.drop(subscriber)
		}
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case subscriber := <-h.Register:
			h.subscribers[subscriber] = true
			h.count.Store(int64(len(h.subscribers)))
			slog.Info("New subscriber registered", "total_subscribers", len(h.subscribers))

		case subscriber := <-h.Unregister:
			if h.subscribers[subscriber] {
				h.drop(subscriber)
				slog.Info("Subscriber unregistered", "total_subscribers", len(h.subscribers))
			}

		case message := <-h.Broadcast:
			slog.Debug("Broadcasting fragment", "recipient_count", len(h.subscribers), "bytes", len(message))
			for subscriber := range h.subscribers {
				select {
				case subscriber.Send <- message:
				default:
					// A full buffer means the page is lagging or gone.
					h.drop(subscriber)
					slog.Warn("Unregistering slow subscriber", "total_subscribers", len(h.subscribers))
				}
			}
		}
	}
}

func (h *Hub) drop(subscriber *Subscriber) {
	delete(h.subscribers, subscriber)
	close(subscriber.Send)
	h.count.Store(int64(len(h.subscribers)))
}

// Join registers s. It reports false when the hub has stopped.
func (h *Hub) Join(s *Subscriber) bool {
	select {
	case h.Register <- s:
		return true
	case <-h.done:
		return false
	}
}

// Leave unregisters s. It is a no-op once the hub has stopped, which has
// already closed s.
func (h *Hub) Leave(s *Subscriber) {
	select {
	case h.Unregister <- s:
	case <-h.done:
	}
}

// Publish hands message to Run for broadcasting, giving up when ctx ends.
func (h *Hub) Publish(ctx context.Context, message []byte) error {
	select {
	case h.Broadcast <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-h.done:
		return ErrStopped
	}
}
