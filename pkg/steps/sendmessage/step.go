// Package sendmessage implements the message delivery step. It resolves
// the customer's address for the configured channel, renders the message
// body against the profile and hands the message to the channel sender.
package sendmessage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/outflowhq/outflow/pkg/log"
	"github.com/outflowhq/outflow/pkg/models"
	"github.com/outflowhq/outflow/pkg/protocol"
	"github.com/outflowhq/outflow/pkg/template"
)

// Step sends one message over a delivery channel.
type Step struct {
	channel   string
	subject   string
	body      string
	customers protocol.CustomerStore
	sender    protocol.ChannelSender
	logger    *slog.Logger
}

func NewStep(config map[string]any, customers protocol.CustomerStore, senders map[string]protocol.ChannelSender) (*Step, error) {
	channel, _ := config["channel"].(string)
	if channel == "" {
		return nil, fmt.Errorf("missing 'channel' in send_message configuration")
	}

	sender, ok := senders[channel]
	if !ok {
		return nil, fmt.Errorf("no sender registered for channel '%s'", channel)
	}

	subject, _ := config["subject"].(string)
	body, _ := config["body"].(string)

	return &Step{
		channel:   channel,
		subject:   subject,
		body:      body,
		customers: customers,
		sender:    sender,
		logger:    log.WithModule("steps.send_message"),
	}, nil
}

// Execute delivers the message. A customer with no address for the channel
// is skipped rather than failed, so a missing phone number does not abort
// an otherwise valid journey.
func (s *Step) Execute(ctx context.Context, execution *models.WorkflowExecution, now time.Time) (protocol.Outcome, error) {
	customer, err := s.customers.GetCustomer(ctx, execution.CustomerID)
	if err != nil {
		return protocol.Outcome{}, fmt.Errorf("failed to load customer %s: %w", execution.CustomerID, err)
	}

	address := customer.AddressFor(s.channel)
	if address == "" {
		s.logger.InfoContext(ctx, "Skipping send, customer has no address for channel",
			"customer_id", customer.ID,
			"channel", s.channel)

		return protocol.AdvanceWith(models.StepResult{
			Type:    models.StepTypeSendMessage,
			Skipped: true,
			SentAt:  now,
		}), nil
	}

	result, err := s.sender.Send(ctx, protocol.SendRequest{
		To:      address,
		Subject: template.Personalize(s.subject, customer),
		Body:    template.Personalize(s.body, customer),
	})
	if err != nil {
		return protocol.Outcome{}, fmt.Errorf("failed to send %s message: %w", s.channel, err)
	}

	return protocol.AdvanceWith(models.StepResult{
		Type:      models.StepTypeSendMessage,
		Recipient: result.Recipient,
		MessageID: result.MessageID,
		SentAt:    result.SentAt,
		Data:      result.Metadata,
	}), nil
}
