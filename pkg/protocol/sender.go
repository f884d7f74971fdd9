package protocol

import (
	"context"
	"time"
)

// SendRequest carries rendered, personalized content to a channel sender.
type SendRequest struct {
	To      string
	Subject string
	Body    string
}

// SendResult records a delivery attempt.
type SendResult struct {
	MessageID string
	Channel   string
	Recipient string
	SentAt    time.Time
	Metadata  map[string]any
}

// ChannelSender delivers rendered content on one channel (email, sms,
// push). A non-nil error marks the delivery failed; the engine fails the
// execution.
type ChannelSender interface {
	Channel() string
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}
