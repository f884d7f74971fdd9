package sendmessage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outflowhq/outflow/pkg/customers"
	"github.com/outflowhq/outflow/pkg/models"
	"github.com/outflowhq/outflow/pkg/protocol"
)

type fakeSender struct {
	lastReq protocol.SendRequest
	err     error
}

func (f *fakeSender) Channel() string { return "email" }

func (f *fakeSender) Send(_ context.Context, req protocol.SendRequest) (protocol.SendResult, error) {
	f.lastReq = req
	if f.err != nil {
		return protocol.SendResult{}, f.err
	}

	return protocol.SendResult{
		MessageID: "msg-1",
		Channel:   "email",
		Recipient: req.To,
		SentAt:    time.Now().UTC(),
	}, nil
}

func newFixture(t *testing.T, customer *models.Customer) (*Step, *fakeSender) {
	t.Helper()

	store := customers.NewStore()
	store.Save(customer)

	sender := &fakeSender{}
	step, err := NewStep(map[string]any{
		"channel": "email",
		"subject": "Hi {{first_name}}",
		"body":    "Welcome, {{full_name}}!",
	}, store, map[string]protocol.ChannelSender{"email": sender})
	require.NoError(t, err)

	return step, sender
}

func TestExecute_SendsPersonalizedMessage(t *testing.T) {
	step, sender := newFixture(t, &models.Customer{
		ID:        "c1",
		Email:     "ada@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})

	execution := &models.WorkflowExecution{ID: "e1", CustomerID: "c1"}

	outcome, err := step.Execute(context.Background(), execution, time.Now().UTC())
	require.NoError(t, err)

	assert.Equal(t, protocol.OutcomeAdvance, outcome.Kind)
	require.NotNil(t, outcome.Result)
	assert.Equal(t, "msg-1", outcome.Result.MessageID)
	assert.Equal(t, "ada@example.com", outcome.Result.Recipient)
	assert.False(t, outcome.Result.Skipped)

	assert.Equal(t, "Hi Ada", sender.lastReq.Subject)
	assert.Equal(t, "Welcome, Ada Lovelace!", sender.lastReq.Body)
}

func TestExecute_MissingAddressSkipsDelivery(t *testing.T) {
	step, sender := newFixture(t, &models.Customer{ID: "c1", FirstName: "Ada"})

	execution := &models.WorkflowExecution{ID: "e1", CustomerID: "c1"}

	outcome, err := step.Execute(context.Background(), execution, time.Now().UTC())
	require.NoError(t, err)

	assert.Equal(t, protocol.OutcomeAdvance, outcome.Kind)
	require.NotNil(t, outcome.Result)
	assert.True(t, outcome.Result.Skipped)
	assert.Empty(t, outcome.Result.MessageID)
	assert.Empty(t, sender.lastReq.To)
}

func TestExecute_SenderFailure(t *testing.T) {
	step, sender := newFixture(t, &models.Customer{ID: "c1", Email: "ada@example.com"})
	sender.err = assert.AnError

	execution := &models.WorkflowExecution{ID: "e1", CustomerID: "c1"}

	_, err := step.Execute(context.Background(), execution, time.Now().UTC())
	assert.Error(t, err)
}

func TestNewStep_Validation(t *testing.T) {
	store := customers.NewStore()
	senders := map[string]protocol.ChannelSender{"email": &fakeSender{}}

	_, err := NewStep(map[string]any{}, store, senders)
	assert.ErrorContains(t, err, "channel")

	_, err = NewStep(map[string]any{"channel": "carrier_pigeon"}, store, senders)
	assert.ErrorContains(t, err, "no sender registered")
}
