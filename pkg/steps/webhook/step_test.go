package webhook

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outflowhq/outflow/pkg/models"
	"github.com/outflowhq/outflow/pkg/protocol"
)

type fakeInvoker struct {
	lastTarget  string
	lastPayload map[string]any
	err         error
}

func (f *fakeInvoker) Call(_ context.Context, target string, payload map[string]any) (protocol.HookResult, error) {
	f.lastTarget = target
	f.lastPayload = payload

	if f.err != nil {
		return protocol.HookResult{}, f.err
	}

	return protocol.HookResult{StatusCode: 200, Body: "ok"}, nil
}

func TestExecute_CallsHookWithCorrelation(t *testing.T) {
	invoker := &fakeInvoker{}
	step, err := NewStep(map[string]any{
		"target":  "https://hooks.example.com/notify",
		"payload": map[string]any{"reason": "journey_milestone"},
	}, invoker)
	require.NoError(t, err)

	execution := &models.WorkflowExecution{ID: "e1", WorkflowID: "w1", CustomerID: "c1"}

	outcome, err := step.Execute(context.Background(), execution, time.Now().UTC())
	require.NoError(t, err)

	assert.Equal(t, protocol.OutcomeAdvance, outcome.Kind)
	require.NotNil(t, outcome.Result)
	assert.Equal(t, 200, outcome.Result.Data["status_code"])

	assert.Equal(t, "https://hooks.example.com/notify", invoker.lastTarget)
	assert.Equal(t, "e1", invoker.lastPayload["execution_id"])
	assert.Equal(t, "c1", invoker.lastPayload["customer_id"])
	assert.Equal(t, "journey_milestone", invoker.lastPayload["reason"])
}

func TestExecute_HookFailure(t *testing.T) {
	step, err := NewStep(map[string]any{"target": "https://hooks.example.com"}, &fakeInvoker{err: assert.AnError})
	require.NoError(t, err)

	_, err = step.Execute(context.Background(), &models.WorkflowExecution{}, time.Now().UTC())
	assert.Error(t, err)
}

func TestNewStep_MissingTarget(t *testing.T) {
	_, err := NewStep(map[string]any{}, &fakeInvoker{})
	assert.ErrorContains(t, err, "target")
}
