package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/outflowhq/outflow/pkg/eventbus"
	"github.com/outflowhq/outflow/pkg/events"
	"github.com/outflowhq/outflow/pkg/models"
	"github.com/outflowhq/outflow/pkg/persistence"
)

// ErrWorkflowNotFound is returned when a workflow is not found.
var ErrWorkflowNotFound = persistence.ErrWorkflowNotFound

// Workflow is the workflow management service: definition CRUD with
// structural and schema validation.
type Workflow struct {
	persistence persistence.Persistence
	eventBus    eventbus.EventPublisher
	validate    *validator.Validate
}

// NewWorkflow creates a new workflow service. The event publisher is
// optional.
func NewWorkflow(store persistence.Persistence, bus eventbus.EventPublisher) *Workflow {
	return &Workflow{
		persistence: store,
		eventBus:    bus,
		validate:    validator.New(),
	}
}

// HealthCheck checks the health of the persistence layer.
func (w *Workflow) HealthCheck(ctx context.Context) (string, bool) {
	if w.persistence == nil {
		return "Persistence layer not initialized", false
	}

	err := w.persistence.HealthCheck(ctx)
	if err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

// List returns all workflow definitions.
func (w *Workflow) List(ctx context.Context) ([]*models.Workflow, error) {
	workflows, err := w.persistence.Workflows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflows: %w", err)
	}

	return workflows, nil
}

// Get returns one workflow definition.
func (w *Workflow) Get(ctx context.Context, id string) (*models.Workflow, error) {
	return w.persistence.WorkflowByID(ctx, id)
}

// Create validates and stores a new workflow definition, assigning an id
// when the caller did not provide one.
func (w *Workflow) Create(ctx context.Context, workflow *models.Workflow) (*models.Workflow, error) {
	if err := w.validateWorkflow("Create", workflow); err != nil {
		return nil, err
	}

	if workflow.ID == "" {
		workflow.ID = uuid.New().String()
	}

	if err := w.persistence.SaveWorkflow(ctx, workflow); err != nil {
		return nil, fmt.Errorf("failed to save workflow: %w", err)
	}

	w.publish(ctx, events.WorkflowCreated{BaseEvent: baseEvent(events.WorkflowCreatedEvent, workflow.ID)})

	return workflow, nil
}

// Update validates and replaces an existing workflow definition.
// Executions already in flight keep following the definition they
// resolve on their next dispatch.
func (w *Workflow) Update(ctx context.Context, id string, workflow *models.Workflow) (*models.Workflow, error) {
	if workflow != nil && workflow.ID != "" && workflow.ID != id {
		return nil, NewValidationError("Update", "body and path ids differ", ErrWorkflowIDMismatch)
	}

	existing, err := w.persistence.WorkflowByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := w.validateWorkflow("Update", workflow); err != nil {
		return nil, err
	}

	workflow.ID = existing.ID
	workflow.CreatedAt = existing.CreatedAt

	if err := w.persistence.SaveWorkflow(ctx, workflow); err != nil {
		return nil, fmt.Errorf("failed to save workflow: %w", err)
	}

	w.publish(ctx, events.WorkflowUpdated{BaseEvent: baseEvent(events.WorkflowUpdatedEvent, workflow.ID)})

	return workflow, nil
}

// Delete removes a workflow definition.
func (w *Workflow) Delete(ctx context.Context, id string) error {
	if err := w.persistence.DeleteWorkflow(ctx, id); err != nil {
		return err
	}

	w.publish(ctx, events.WorkflowDeleted{BaseEvent: baseEvent(events.WorkflowDeletedEvent, id)})

	return nil
}

func (w *Workflow) validateWorkflow(op string, workflow *models.Workflow) error {
	if workflow == nil {
		return NewValidationError(op, "missing body", ErrWorkflowNil)
	}

	if len(workflow.Steps) == 0 {
		return NewValidationError(op, "steps are required", ErrStepsRequired)
	}

	if err := w.validate.Struct(workflow); err != nil {
		return NewValidationError(op, err.Error(), ErrInvalidRequest)
	}

	for _, step := range workflow.Steps {
		if err := validateStepConfig(step); err != nil {
			return NewValidationError(op, err.Error(), ErrInvalidStepConfig)
		}
	}

	if err := workflow.Validate(); err != nil {
		return NewValidationError(op, err.Error(), ErrInvalidGraph)
	}

	return nil
}

func (w *Workflow) publish(ctx context.Context, event eventbus.Event) {
	if w.eventBus == nil {
		return
	}

	// Definition events are advisory; a publish failure never fails the
	// write.
	_ = w.eventBus.Publish(ctx, string(event.GetType()), event)
}

func baseEvent(eventType events.EventType, workflowID string) events.BaseEvent {
	return events.BaseEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		WorkflowID: workflowID,
	}
}
