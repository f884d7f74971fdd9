// Package engine implements workflow execution: starting customers on a
// workflow, dispatching steps, and waking parked executions on ticks.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/outflowhq/outflow/pkg/eventbus"
	"github.com/outflowhq/outflow/pkg/events"
	"github.com/outflowhq/outflow/pkg/log"
	"github.com/outflowhq/outflow/pkg/models"
	"github.com/outflowhq/outflow/pkg/persistence"
	"github.com/outflowhq/outflow/pkg/registry"
)

// Engine owns the execution state machine. All mutations for one
// execution are serialized through its per-execution lock; different
// executions progress independently.
type Engine struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	registry    *registry.Registry
	eventBus    eventbus.EventPublisher
	now         func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex

	wake *wakeQueue
}

type Option func(*Engine)

// WithEventBus enables lifecycle event publishing.
func WithEventBus(bus eventbus.EventPublisher) Option {
	return func(e *Engine) {
		e.eventBus = bus
	}
}

// WithClock replaces the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func New(store persistence.Persistence, reg *registry.Registry, opts ...Option) *Engine {
	engine := &Engine{
		logger:      log.WithModule("engine"),
		persistence: store,
		registry:    reg,
		now:         func() time.Time { return time.Now().UTC() },
		locks:       make(map[string]*sync.Mutex),
		wake:        newWakeQueue(),
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine
}

// StartWorkflow creates a new execution positioned at the workflow's
// first step. The first step is not dispatched; callers drive the
// execution with Dispatch or Drive.
func (e *Engine) StartWorkflow(ctx context.Context, workflowID, customerID, campaignID string) (*models.WorkflowExecution, error) {
	workflow, err := e.persistence.WorkflowByID(ctx, workflowID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workflow %s: %w", workflowID, err)
	}

	if err := workflow.Validate(); err != nil {
		return nil, fmt.Errorf("workflow %s is not startable: %w", workflowID, err)
	}

	first := workflow.GetFirstStep()

	now := e.now()
	execution := &models.WorkflowExecution{
		ID:             uuid.New().String(),
		WorkflowID:     workflowID,
		CustomerID:     customerID,
		CampaignID:     campaignID,
		CompletedSteps: make([]string, 0),
		Results:        make(map[string]models.StepResult),
	}
	execution.Start(first.ID, now)

	if err := e.persistence.SaveExecution(ctx, execution); err != nil {
		return nil, fmt.Errorf("failed to save execution: %w", err)
	}

	e.logger.InfoContext(ctx, "Execution started",
		"execution_id", execution.ID,
		"workflow_id", workflowID,
		"customer_id", customerID)

	e.publish(ctx, execution.ID, events.ExecutionStarted{
		BaseEvent:   e.baseEvent(events.ExecutionStartedEvent, workflowID),
		ExecutionID: execution.ID,
		CustomerID:  customerID,
		CampaignID:  campaignID,
		FirstStepID: first.ID,
	})

	return execution, nil
}

// Dispatch advances an execution by exactly one state-machine
// transition. Dispatching a terminal execution, or a waiting execution
// whose wake time has not elapsed, is a no-op and returns the execution
// unchanged.
func (e *Engine) Dispatch(ctx context.Context, executionID string) (*models.WorkflowExecution, error) {
	lock := e.lockFor(executionID)
	lock.Lock()
	defer lock.Unlock()

	execution, _, err := e.dispatchLocked(ctx, executionID)

	return execution, err
}

// Drive dispatches an execution repeatedly until it parks, terminates,
// or stops changing.
func (e *Engine) Drive(ctx context.Context, executionID string) (*models.WorkflowExecution, error) {
	lock := e.lockFor(executionID)
	lock.Lock()
	defer lock.Unlock()

	for {
		execution, changed, err := e.dispatchLocked(ctx, executionID)
		if err != nil || !changed || execution.Status != models.ExecutionStatusRunning {
			return execution, err
		}
	}
}

// Cancel terminates a running or waiting execution. The cancellation is
// applied under the execution's lock, so it is visible to any subsequent
// dispatch before side effects occur. Cancelling a terminal execution is
// a no-op.
func (e *Engine) Cancel(ctx context.Context, executionID string) (*models.WorkflowExecution, error) {
	lock := e.lockFor(executionID)
	lock.Lock()
	defer lock.Unlock()

	execution, err := e.persistence.ExecutionByID(ctx, executionID)
	if err != nil {
		return nil, err
	}

	if execution.Status.IsTerminal() {
		return execution, nil
	}

	execution.Cancel(e.now())

	if err := e.persistence.SaveExecution(ctx, execution); err != nil {
		return nil, fmt.Errorf("failed to save cancelled execution: %w", err)
	}

	e.logger.InfoContext(ctx, "Execution cancelled", "execution_id", executionID)

	e.publish(ctx, execution.ID, events.ExecutionCancelled{
		BaseEvent:   e.baseEvent(events.ExecutionCancelledEvent, execution.WorkflowID),
		ExecutionID: execution.ID,
	})

	return execution, nil
}

// GetExecution returns the execution with the given id.
func (e *Engine) GetExecution(ctx context.Context, executionID string) (*models.WorkflowExecution, error) {
	return e.persistence.ExecutionByID(ctx, executionID)
}

// ListExecutions returns all executions, optionally filtered by
// workflow.
func (e *Engine) ListExecutions(ctx context.Context, workflowID string) ([]*models.WorkflowExecution, error) {
	executions, err := e.persistence.Executions(ctx)
	if err != nil {
		return nil, err
	}

	if workflowID == "" {
		return executions, nil
	}

	filtered := make([]*models.WorkflowExecution, 0, len(executions))

	for _, execution := range executions {
		if execution.WorkflowID == workflowID {
			filtered = append(filtered, execution)
		}
	}

	return filtered, nil
}

func (e *Engine) lockFor(executionID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	lock, ok := e.locks[executionID]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[executionID] = lock
	}

	return lock
}

func (e *Engine) baseEvent(eventType events.EventType, workflowID string) events.BaseEvent {
	return events.BaseEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		Timestamp:  e.now(),
		WorkflowID: workflowID,
	}
}

// publish sends a lifecycle event, best effort. Event delivery failures
// never affect execution state.
func (e *Engine) publish(ctx context.Context, key string, event eventbus.Event) {
	if e.eventBus == nil {
		return
	}

	if err := e.eventBus.Publish(ctx, key, event); err != nil {
		e.logger.WarnContext(ctx, "Failed to publish lifecycle event",
			"event_type", event.GetType(),
			"error", err)
	}
}
