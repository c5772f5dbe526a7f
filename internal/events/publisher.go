package events

import "context"

// Publisher delivers job change events to a downstream backend.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
	Close() error
}

// NopPublisher drops every event. It is used when no backend is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, evt Event) error { return ctx.Err() }
func (NopPublisher) Close() error                                { return nil }

var _ Publisher = NopPublisher{}
