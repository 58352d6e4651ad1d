// Package pubsub carries load events between the data loader and the live page
// stream.
package pubsub

import (
	"context"
)

// Message is the structure passed between components on the bus.
type Message struct {
	// Topic identifies the channel the message belongs to (e.g., "profile.loaded").
	Topic string
	// Payload contains the JSON-encoded event.
	Payload []byte
	// Metadata can contain arbitrary key-value pairs for context (e.g., the data source).
	Metadata map[string]string
}

// Handler defines the function signature for processing a received message.
type Handler func(ctx context.Context, msg Message) error

// Publisher defines the contract for sending messages to the Pub/Sub system.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// Subscriber defines the contract for receiving messages from the Pub/Sub system.
type Subscriber interface {
	// Subscribe starts listening to the given topic, processing messages with the
	// handler on a background goroutine until ctx is canceled or the bus closes.
	Subscribe(ctx context.Context, topic string, handler Handler) error
	Close() error
}

// PubSub is both ends of the bus.
type PubSub interface {
	Publisher
	Subscriber
}
