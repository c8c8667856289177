package events

import (
	"context"
	"encoding/json"
	"time"
)

const (
	EventContactCreated = "contact.created"

	AggregateContact = "contact"
)

type Envelope struct {
	EventType     string          `json:"event_type"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
}

// Publisher sends a raw payload to a pub/sub channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// NotificationChannel is the channel a recipient's notifications go to.
func NotificationChannel(recipient string) string {
	return "channel:notifications:" + recipient
}
