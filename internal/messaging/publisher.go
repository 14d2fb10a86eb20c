package messaging

import (
	"context"
)

// Message is one event ready to be published
type Message struct {
	// Subject is the dot separated NATS subject
	Subject string
	// ID deduplicates redeliveries of the same event
	ID   string
	Data []byte
}

// Publisher defines the interface for publishing events to message queue
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// Publish sends the message and waits for the broker acknowledgement
	Publish(ctx context.Context, msg Message) error
	// Close closes the connection
	Close()
}
