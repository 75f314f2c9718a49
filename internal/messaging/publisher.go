package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Publish sends a typed event.
type Publish[T any] func(ctx context.Context, event *T) error

// NewPublishFunc binds a publisher and topic into a typed Publish function.
// Events are encoded as JSON.
func NewPublishFunc[T any](publisher message.Publisher, topic string) Publish[T] {
	return func(ctx context.Context, event *T) error {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("encode %s event: %w", topic, err)
		}

		msg := message.NewMessage(watermill.NewUUID(), payload)
		msg.SetContext(ctx)

		return publisher.Publish(topic, msg)
	}
}

// NopPublish discards events. It is used when event publishing is disabled.
func NopPublish[T any]() Publish[T] {
	return func(context.Context, *T) error { return nil }
}

// Publisher owns a watermill publisher so the injector can close it on shutdown.
type Publisher struct {
	message.Publisher
}

// NewPublisher wraps publisher.
func NewPublisher(publisher message.Publisher) *Publisher {
	return &Publisher{Publisher: publisher}
}

// Shutdown closes the underlying publisher.
func (p *Publisher) Shutdown() error {
	return p.Close()
}
