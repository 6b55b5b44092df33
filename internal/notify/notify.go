// Package notify defines the messaging tool the action executor consumes.
package notify

import (
	"context"

	"hiring-backend/internal/shared/telemetry"
)

// Message is a plain-text notification.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Messenger is the notification boundary consumed by the core. Delivery is a
// best-effort side channel: callers must not treat a failure as fatal to the
// surrounding workflow.
type Messenger interface {
	Send(ctx context.Context, msg Message) error
}

// LogMessenger writes messages to the structured log instead of delivering
// them. Used when no mail provider is configured.
type LogMessenger struct{}

// Send logs the message and reports success.
func (LogMessenger) Send(ctx context.Context, msg Message) error {
	_ = ctx
	telemetry.Info("notify.log_delivery", map[string]any{
		"to":      msg.To,
		"subject": msg.Subject,
	})
	return nil
}
