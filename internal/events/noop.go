package events

import "context"

// NoopPublisher discards events. It is used when NATS is not configured.
type NoopPublisher struct{}

func (n *NoopPublisher) Publish(context.Context, string, any) error {
	return nil
}

func (n *NoopPublisher) Close() error {
	return nil
}
