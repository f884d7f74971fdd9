package file

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outflowhq/outflow/pkg/models"
	"github.com/outflowhq/outflow/pkg/persistence"
)

func newTestPersistence(t *testing.T) *Persistence {
	t.Helper()

	return NewPersistence(t.TempDir())
}

func TestWorkflowRoundTrip(t *testing.T) {
	p := newTestPersistence(t)
	ctx := context.Background()

	workflow := &models.Workflow{
		ID:   "w1",
		Name: "Welcome series",
		Steps: []*models.Step{
			{ID: "s1", Type: models.StepTypeSendMessage, Config: map[string]any{"channel": "email"}},
		},
	}

	require.NoError(t, p.SaveWorkflow(ctx, workflow))

	loaded, err := p.WorkflowByID(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, "Welcome series", loaded.Name)
	require.Len(t, loaded.Steps, 1)
	assert.Equal(t, models.StepTypeSendMessage, loaded.Steps[0].Type)

	all, err := p.Workflows(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, p.DeleteWorkflow(ctx, "w1"))

	_, err = p.WorkflowByID(ctx, "w1")
	assert.True(t, persistence.IsWorkflowNotFound(err))
}

func TestWorkflowNotFound(t *testing.T) {
	p := newTestPersistence(t)

	_, err := p.WorkflowByID(context.Background(), "missing")
	assert.True(t, persistence.IsWorkflowNotFound(err))

	err = p.DeleteWorkflow(context.Background(), "missing")
	assert.True(t, persistence.IsWorkflowNotFound(err))
}

func TestExecutionRoundTripAndDue(t *testing.T) {
	p := newTestPersistence(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	wakeSoon := now.Add(-time.Minute)
	wakeLater := now.Add(time.Hour)

	require.NoError(t, p.SaveExecution(ctx, &models.WorkflowExecution{
		ID:         "e1",
		WorkflowID: "w1",
		Status:     models.ExecutionStatusWaiting,
		NextStepAt: &wakeSoon,
	}))
	require.NoError(t, p.SaveExecution(ctx, &models.WorkflowExecution{
		ID:         "e2",
		WorkflowID: "w1",
		Status:     models.ExecutionStatusWaiting,
		NextStepAt: &wakeLater,
	}))
	require.NoError(t, p.SaveExecution(ctx, &models.WorkflowExecution{
		ID:         "e3",
		WorkflowID: "w1",
		Status:     models.ExecutionStatusRunning,
	}))

	due, err := p.DueExecutions(ctx, now)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "e1", due[0].ID)

	loaded, err := p.ExecutionByID(ctx, "e2")
	require.NoError(t, err)
	assert.Equal(t, models.ExecutionStatusWaiting, loaded.Status)

	_, err = p.ExecutionByID(ctx, "missing")
	assert.True(t, persistence.IsExecutionNotFound(err))
}

func TestHealthCheck(t *testing.T) {
	p := newTestPersistence(t)
	assert.NoError(t, p.HealthCheck(context.Background()))

	missing := NewPersistence("/nonexistent/outflow-data")
	assert.Error(t, missing.HealthCheck(context.Background()))
}
