package wait

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outflowhq/outflow/pkg/models"
	"github.com/outflowhq/outflow/pkg/protocol"
)

func TestExecute_FirstEntryParks(t *testing.T) {
	step, err := NewStep(map[string]any{"duration": "1 hour"})
	require.NoError(t, err)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	execution := &models.WorkflowExecution{Status: models.ExecutionStatusRunning}

	outcome, err := step.Execute(context.Background(), execution, now)
	require.NoError(t, err)

	assert.Equal(t, protocol.OutcomePark, outcome.Kind)
	assert.Equal(t, now.Add(time.Hour), outcome.WakeAt)
}

func TestExecute_ReentryAfterWakeAdvances(t *testing.T) {
	step, err := NewStep(map[string]any{"duration": "1 hour"})
	require.NoError(t, err)

	wakeAt := time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)
	execution := &models.WorkflowExecution{
		Status:     models.ExecutionStatusWaiting,
		NextStepAt: &wakeAt,
	}

	outcome, err := step.Execute(context.Background(), execution, wakeAt)
	require.NoError(t, err)
	assert.Equal(t, protocol.OutcomeAdvance, outcome.Kind)

	outcome, err = step.Execute(context.Background(), execution, wakeAt.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, protocol.OutcomeAdvance, outcome.Kind)
}

func TestExecute_ReentryBeforeWakeKeepsOriginalWakeTime(t *testing.T) {
	step, err := NewStep(map[string]any{"duration": "1 hour"})
	require.NoError(t, err)

	wakeAt := time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)
	execution := &models.WorkflowExecution{
		Status:     models.ExecutionStatusWaiting,
		NextStepAt: &wakeAt,
	}

	outcome, err := step.Execute(context.Background(), execution, wakeAt.Add(-10*time.Minute))
	require.NoError(t, err)

	assert.Equal(t, protocol.OutcomePark, outcome.Kind)
	assert.Equal(t, wakeAt, outcome.WakeAt)
}

func TestNewStep_MissingDurationUsesDefault(t *testing.T) {
	step, err := NewStep(map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultWait, step.duration)
}

func TestNewStep_UnparseableDuration(t *testing.T) {
	_, err := NewStep(map[string]any{"duration": "next tuesday"})
	assert.ErrorIs(t, err, models.ErrInvalidDuration)
}
