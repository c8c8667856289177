package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"contact-form/internal/events"
	"contact-form/pkg/logger"

	"go.uber.org/zap"
)

// NewContactText is sent to the recipient whenever a contact is submitted.
const NewContactText = "A new user has visited on your application and sent a message."

// Notification is an out-of-band message for one recipient.
type Notification struct {
	Recipient string `json:"recipient"`
	Text      string `json:"text"`
	ContactID uint64 `json:"contact_id"`
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// RedisNotifier publishes notifications as event envelopes on the recipient's
// channel.
type RedisNotifier struct {
	publisher events.Publisher
	clock     func() time.Time
}

func NewRedisNotifier(publisher events.Publisher) *RedisNotifier {
	return &RedisNotifier{publisher: publisher, clock: time.Now}
}

func (n *RedisNotifier) Notify(ctx context.Context, note Notification) error {
	if note.Recipient == "" {
		return fmt.Errorf("notify: recipient is required")
	}
	payload, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("notify: marshal payload: %w", err)
	}
	env := events.Envelope{
		EventType:     events.EventContactCreated,
		AggregateType: events.AggregateContact,
		AggregateID:   strconv.FormatUint(note.ContactID, 10),
		OccurredAt:    n.clock().UTC(),
		Payload:       payload,
	}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("notify: marshal envelope: %w", err)
	}
	if err := n.publisher.Publish(ctx, events.NotificationChannel(note.Recipient), data); err != nil {
		return fmt.Errorf("notify: publish: %w", err)
	}
	return nil
}

// LogNotifier writes notifications to the log. Used when Redis is disabled.
type LogNotifier struct {
	logger *logger.Logger
}

func NewLogNotifier(l *logger.Logger) *LogNotifier {
	return &LogNotifier{logger: l}
}

func (n *LogNotifier) Notify(ctx context.Context, note Notification) error {
	n.logger.Info(ctx, "notification",
		zap.String("recipient", note.Recipient),
		zap.Uint64("contact_id", note.ContactID),
		zap.String("text", note.Text),
	)
	return nil
}
