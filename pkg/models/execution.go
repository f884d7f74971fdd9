package models

import "time"

// ExecutionStatus represents the lifecycle state of a workflow execution.
type ExecutionStatus string

const (
	ExecutionStatusPending   ExecutionStatus = "pending"
	ExecutionStatusRunning   ExecutionStatus = "running"
	ExecutionStatusWaiting   ExecutionStatus = "waiting"
	ExecutionStatusCompleted ExecutionStatus = "completed"
	ExecutionStatusFailed    ExecutionStatus = "failed"
	ExecutionStatusCancelled ExecutionStatus = "cancelled"
)

// IsTerminal reports whether no further transitions may occur.
func (s ExecutionStatus) IsTerminal() bool {
	return s == ExecutionStatusCompleted || s == ExecutionStatusFailed || s == ExecutionStatusCancelled
}

// StepResult records the side effect produced when a step ran.
type StepResult struct {
	Type      StepType       `json:"type"`
	Recipient string         `json:"recipient,omitempty"`
	MessageID string         `json:"message_id,omitempty"`
	Skipped   bool           `json:"skipped,omitempty"`
	SentAt    time.Time      `json:"sent_at"`
	Data      map[string]any `json:"data,omitempty"`
}

// WorkflowExecution tracks a single customer's progress through a workflow.
// The engine owns the record exclusively while it is in memory; persistence
// is an archival concern of the caller.
type WorkflowExecution struct {
	ID         string `json:"id"`
	WorkflowID string `json:"workflow_id"`
	CustomerID string `json:"customer_id"`
	CampaignID string `json:"campaign_id,omitempty"`

	CurrentStepID  string          `json:"current_step_id,omitempty"`
	Status         ExecutionStatus `json:"status"`
	CompletedSteps []string        `json:"completed_steps"`

	StartedAt   time.Time  `json:"started_at"`
	NextStepAt  *time.Time `json:"next_step_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	Results map[string]StepResult `json:"results"`
	Error   string                `json:"error,omitempty"`
}

// Start moves a pending execution to running, positioned at the given step.
func (e *WorkflowExecution) Start(firstStepID string, now time.Time) {
	e.Status = ExecutionStatusRunning
	e.CurrentStepID = firstStepID
	e.StartedAt = now
}

// Advance marks the current step completed and repositions the execution.
// An empty nextStepID completes the execution.
func (e *WorkflowExecution) Advance(nextStepID string, now time.Time) {
	e.CompletedSteps = append(e.CompletedSteps, e.CurrentStepID)
	e.NextStepAt = nil

	if nextStepID == "" {
		e.complete(now)

		return
	}

	e.CurrentStepID = nextStepID
	e.Status = ExecutionStatusRunning
}

// Park suspends the execution on its current step until wakeAt. The step is
// not recorded as completed until it actually fires.
func (e *WorkflowExecution) Park(wakeAt time.Time) {
	e.Status = ExecutionStatusWaiting
	e.NextStepAt = &wakeAt
}

// Route repositions the execution after a branch resolution without marking
// the routing step completed. An empty nextStepID completes the execution.
func (e *WorkflowExecution) Route(nextStepID string, now time.Time) {
	if nextStepID == "" {
		e.complete(now)

		return
	}

	e.CurrentStepID = nextStepID
	e.Status = ExecutionStatusRunning
}

// Complete terminates the execution successfully.
func (e *WorkflowExecution) Complete(now time.Time) {
	e.complete(now)
}

// Fail terminates the execution with the captured error detail.
func (e *WorkflowExecution) Fail(detail string, now time.Time) {
	e.Status = ExecutionStatusFailed
	e.Error = detail
	e.CompletedAt = &now
}

// Cancel terminates a running or waiting execution. Cancelling an already
// terminal execution is a no-op.
func (e *WorkflowExecution) Cancel(now time.Time) {
	if e.Status.IsTerminal() {
		return
	}

	e.Status = ExecutionStatusCancelled
	e.CompletedAt = &now
}

// RecordResult stores the side-effect record for a step.
func (e *WorkflowExecution) RecordResult(stepID string, result StepResult) {
	if e.Results == nil {
		e.Results = make(map[string]StepResult)
	}

	e.Results[stepID] = result
}

func (e *WorkflowExecution) complete(now time.Time) {
	e.Status = ExecutionStatusCompleted
	e.NextStepAt = nil
	e.CompletedAt = &now
}
