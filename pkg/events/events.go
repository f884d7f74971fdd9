// Package events defines event types and structures for execution
// lifecycle notifications.
package events

import (
	"time"

	"github.com/outflowhq/outflow/pkg/models"
)

type EventType string

// Topic is the stream all lifecycle events are published on.
const Topic = "outflow.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	// Execution lifecycle events.
	ExecutionStartedEvent   EventType = "execution.started"
	ExecutionStepFiredEvent EventType = "execution.step.fired"
	ExecutionWaitingEvent   EventType = "execution.waiting"
	ExecutionCompletedEvent EventType = "execution.completed"
	ExecutionFailedEvent    EventType = "execution.failed"
	ExecutionCancelledEvent EventType = "execution.cancelled"

	// Workflow definition events.
	WorkflowCreatedEvent EventType = "workflow.created"
	WorkflowUpdatedEvent EventType = "workflow.updated"
	WorkflowDeletedEvent EventType = "workflow.deleted"
)

type BaseEvent struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	Timestamp  time.Time `json:"timestamp"`
	WorkflowID string    `json:"workflow_id"`
}

type ExecutionStarted struct {
	BaseEvent

	ExecutionID string `json:"execution_id"`
	CustomerID  string `json:"customer_id"`
	CampaignID  string `json:"campaign_id,omitempty"`
	FirstStepID string `json:"first_step_id"`
}

func (e ExecutionStarted) GetType() EventType {
	return ExecutionStartedEvent
}

type ExecutionStepFired struct {
	BaseEvent

	ExecutionID string            `json:"execution_id"`
	StepID      string            `json:"step_id"`
	StepType    models.StepType   `json:"step_type"`
	Result      *models.StepResult `json:"result,omitempty"`
}

func (e ExecutionStepFired) GetType() EventType {
	return ExecutionStepFiredEvent
}

type ExecutionWaiting struct {
	BaseEvent

	ExecutionID string    `json:"execution_id"`
	StepID      string    `json:"step_id"`
	WakeAt      time.Time `json:"wake_at"`
}

func (e ExecutionWaiting) GetType() EventType {
	return ExecutionWaitingEvent
}

type ExecutionCompleted struct {
	BaseEvent

	ExecutionID    string        `json:"execution_id"`
	CompletedSteps []string      `json:"completed_steps"`
	Duration       time.Duration `json:"duration"`
}

func (e ExecutionCompleted) GetType() EventType {
	return ExecutionCompletedEvent
}

type ExecutionFailed struct {
	BaseEvent

	ExecutionID string `json:"execution_id"`
	StepID      string `json:"step_id"`
	Error       string `json:"error"`
}

func (e ExecutionFailed) GetType() EventType {
	return ExecutionFailedEvent
}

type ExecutionCancelled struct {
	BaseEvent

	ExecutionID string `json:"execution_id"`
}

func (e ExecutionCancelled) GetType() EventType {
	return ExecutionCancelledEvent
}

type WorkflowCreated struct {
	BaseEvent
}

func (e WorkflowCreated) GetType() EventType {
	return WorkflowCreatedEvent
}

type WorkflowUpdated struct {
	BaseEvent
}

func (e WorkflowUpdated) GetType() EventType {
	return WorkflowUpdatedEvent
}

type WorkflowDeleted struct {
	BaseEvent
}

func (e WorkflowDeleted) GetType() EventType {
	return WorkflowDeletedEvent
}
