package events

import "context"

// Event types
const (
	EventAuditLogged = "audit_logged"
)

// ChannelAudit is the pub/sub channel the websocket feed listens on.
const ChannelAudit = "events:audit"

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, channel string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, channel string, handler func(Event)) error
}

// NopPublisher discards events. Used in tests and when running without redis.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, Event) error { return nil }
