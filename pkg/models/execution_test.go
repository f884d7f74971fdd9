package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExecution() *WorkflowExecution {
	return &WorkflowExecution{
		ID:         "exec-1",
		WorkflowID: "wf-1",
		CustomerID: "cust-1",
		Status:     ExecutionStatusPending,
	}
}

func TestExecutionStartAndAdvance(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	exec := newTestExecution()

	exec.Start("step1", now)
	assert.Equal(t, ExecutionStatusRunning, exec.Status)
	assert.Equal(t, "step1", exec.CurrentStepID)
	assert.Equal(t, now, exec.StartedAt)

	exec.Advance("step2", now)
	assert.Equal(t, []string{"step1"}, exec.CompletedSteps)
	assert.Equal(t, "step2", exec.CurrentStepID)
	assert.Equal(t, ExecutionStatusRunning, exec.Status)
}

func TestExecutionAdvanceToEndCompletes(t *testing.T) {
	now := time.Now().UTC()
	exec := newTestExecution()
	exec.Start("step1", now)

	exec.Advance("", now)
	assert.Equal(t, ExecutionStatusCompleted, exec.Status)
	require.NotNil(t, exec.CompletedAt)
	assert.Equal(t, []string{"step1"}, exec.CompletedSteps)
}

func TestExecutionParkKeepsCurrentStep(t *testing.T) {
	now := time.Now().UTC()
	wake := now.Add(2 * time.Hour)
	exec := newTestExecution()
	exec.Start("step1", now)

	exec.Park(wake)
	assert.Equal(t, ExecutionStatusWaiting, exec.Status)
	require.NotNil(t, exec.NextStepAt)
	assert.Equal(t, wake, *exec.NextStepAt)
	assert.Equal(t, "step1", exec.CurrentStepID)
	assert.Empty(t, exec.CompletedSteps, "parked step is not completed until it fires")
}

func TestExecutionRouteDoesNotRecordStep(t *testing.T) {
	now := time.Now().UTC()
	exec := newTestExecution()
	exec.Start("check", now)

	exec.Route("offer", now)
	assert.Equal(t, "offer", exec.CurrentStepID)
	assert.Empty(t, exec.CompletedSteps)
	assert.Equal(t, ExecutionStatusRunning, exec.Status)
}

func TestExecutionFail(t *testing.T) {
	now := time.Now().UTC()
	exec := newTestExecution()
	exec.Start("step1", now)

	exec.Fail("smtp: connection refused", now)
	assert.Equal(t, ExecutionStatusFailed, exec.Status)
	assert.Equal(t, "smtp: connection refused", exec.Error)
	assert.True(t, exec.Status.IsTerminal())
}

func TestExecutionCancelIsTerminalOnce(t *testing.T) {
	now := time.Now().UTC()
	exec := newTestExecution()
	exec.Start("step1", now)

	exec.Cancel(now)
	assert.Equal(t, ExecutionStatusCancelled, exec.Status)

	// Cancelling again, or cancelling a completed execution, changes nothing.
	later := now.Add(time.Hour)
	exec.Cancel(later)
	require.NotNil(t, exec.CompletedAt)
	assert.Equal(t, now, *exec.CompletedAt)
}

func TestCustomerFullNameAndAddress(t *testing.T) {
	customer := &Customer{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}
	assert.Equal(t, "Ada Lovelace", customer.FullName())
	assert.Equal(t, "ada@example.com", customer.AddressFor("email"))
	assert.Empty(t, customer.AddressFor("sms"))

	anonymous := &Customer{}
	assert.Equal(t, "Unknown", anonymous.FullName())
}
