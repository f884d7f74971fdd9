// Package senders provides the delivery channel adapters used by
// send-message steps. The log senders write deliveries to structured
// logs, which is what development and test environments run with; a
// production deployment swaps in real provider adapters behind the
// same interface.
package senders

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/outflowhq/outflow/pkg/log"
	"github.com/outflowhq/outflow/pkg/protocol"
)

// Delivery channel names. These match the "channel" value carried in
// send-message step configuration.
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
	ChannelPush  = "push"
)

// LogSender implements protocol.ChannelSender by logging the delivery
// and returning a synthetic message ID.
type LogSender struct {
	channel string
	logger  *slog.Logger
}

func NewLogSender(channel string) *LogSender {
	return &LogSender{
		channel: channel,
		logger:  log.WithModule("senders"),
	}
}

func (s *LogSender) Channel() string {
	return s.channel
}

func (s *LogSender) Send(ctx context.Context, req protocol.SendRequest) (protocol.SendResult, error) {
	if req.To == "" {
		return protocol.SendResult{}, fmt.Errorf("send via %s: empty recipient address", s.channel)
	}

	messageID := fmt.Sprintf("%s-%s", s.channel, uuid.New().String())
	sentAt := time.Now().UTC()

	s.logger.InfoContext(ctx, "Message delivered",
		"channel", s.channel,
		"to", req.To,
		"subject", req.Subject,
		"message_id", messageID)

	return protocol.SendResult{
		MessageID: messageID,
		Channel:   s.channel,
		Recipient: req.To,
		SentAt:    sentAt,
		Metadata: map[string]any{
			"body_length": len(req.Body),
		},
	}, nil
}

// FailingSender implements protocol.ChannelSender by refusing every
// delivery. Tests use it to exercise failure handling.
type FailingSender struct {
	channel string
	reason  string
}

func NewFailingSender(channel, reason string) *FailingSender {
	return &FailingSender{channel: channel, reason: reason}
}

func (s *FailingSender) Channel() string {
	return s.channel
}

func (s *FailingSender) Send(_ context.Context, _ protocol.SendRequest) (protocol.SendResult, error) {
	return protocol.SendResult{}, fmt.Errorf("send via %s: %s", s.channel, s.reason)
}

// DefaultSenders returns log-backed senders for every built-in channel,
// keyed by channel name.
func DefaultSenders() map[string]protocol.ChannelSender {
	return map[string]protocol.ChannelSender{
		ChannelEmail: NewLogSender(ChannelEmail),
		ChannelSMS:   NewLogSender(ChannelSMS),
		ChannelPush:  NewLogSender(ChannelPush),
	}
}
