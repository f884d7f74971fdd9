package senders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outflowhq/outflow/pkg/protocol"
)

func TestLogSender_Send(t *testing.T) {
	sender := NewLogSender(ChannelEmail)

	result, err := sender.Send(context.Background(), protocol.SendRequest{
		To:      "ada@example.com",
		Subject: "Welcome",
		Body:    "Hi Ada",
	})
	require.NoError(t, err)

	assert.Equal(t, ChannelEmail, result.Channel)
	assert.Equal(t, "ada@example.com", result.Recipient)
	assert.NotEmpty(t, result.MessageID)
	assert.False(t, result.SentAt.IsZero())
}

func TestLogSender_EmptyRecipient(t *testing.T) {
	sender := NewLogSender(ChannelSMS)

	_, err := sender.Send(context.Background(), protocol.SendRequest{Body: "hello"})
	assert.Error(t, err)
}

func TestFailingSender_AlwaysErrors(t *testing.T) {
	sender := NewFailingSender(ChannelEmail, "provider unavailable")
	assert.Equal(t, ChannelEmail, sender.Channel())

	_, err := sender.Send(context.Background(), protocol.SendRequest{To: "ada@example.com"})
	assert.ErrorContains(t, err, "provider unavailable")
}

func TestDefaultSenders(t *testing.T) {
	all := DefaultSenders()

	for _, channel := range []string{ChannelEmail, ChannelSMS, ChannelPush} {
		sender, ok := all[channel]
		require.True(t, ok, channel)
		assert.Equal(t, channel, sender.Channel())
	}
}
