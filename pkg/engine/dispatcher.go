package engine

import (
	"context"
	"fmt"

	"github.com/outflowhq/outflow/pkg/events"
	"github.com/outflowhq/outflow/pkg/models"
	"github.com/outflowhq/outflow/pkg/protocol"
)

// dispatchLocked performs one state-machine transition. The caller must
// hold the execution's lock. The returned flag reports whether any state
// changed.
func (e *Engine) dispatchLocked(ctx context.Context, executionID string) (*models.WorkflowExecution, bool, error) {
	execution, err := e.persistence.ExecutionByID(ctx, executionID)
	if err != nil {
		return nil, false, err
	}

	if execution.Status.IsTerminal() {
		return execution, false, nil
	}

	if execution.Status == models.ExecutionStatusWaiting &&
		execution.NextStepAt != nil && e.now().Before(*execution.NextStepAt) {
		return execution, false, nil
	}

	workflow, err := e.persistence.WorkflowByID(ctx, execution.WorkflowID)
	if err != nil {
		// Treated as transient: the execution keeps its state and is
		// retried on a later tick.
		e.logger.WarnContext(ctx, "Workflow did not resolve, leaving execution untouched",
			"execution_id", executionID,
			"workflow_id", execution.WorkflowID,
			"error", err)

		return execution, false, fmt.Errorf("failed to resolve workflow %s: %w", execution.WorkflowID, err)
	}

	step := workflow.GetStep(execution.CurrentStepID)
	if step == nil {
		return e.failExecution(ctx, execution,
			fmt.Sprintf("step %s no longer exists in workflow %s", execution.CurrentStepID, workflow.ID))
	}

	handler, err := e.registry.CreateStepHandler(string(step.Type), step.Config)
	if err != nil {
		return e.failExecution(ctx, execution, err.Error())
	}

	now := e.now()

	outcome, err := handler.Execute(ctx, execution, now)
	if err != nil {
		return e.failExecution(ctx, execution, err.Error())
	}

	switch outcome.Kind {
	case protocol.OutcomeAdvance:
		if outcome.Result != nil {
			execution.RecordResult(step.ID, *outcome.Result)
		}

		next := workflow.GetNextStep(step.ID, "")
		execution.Advance(nextStepID(next), now)

		e.publish(ctx, execution.ID, events.ExecutionStepFired{
			BaseEvent:   e.baseEvent(events.ExecutionStepFiredEvent, workflow.ID),
			ExecutionID: execution.ID,
			StepID:      step.ID,
			StepType:    step.Type,
			Result:      outcome.Result,
		})

	case protocol.OutcomePark:
		execution.Park(outcome.WakeAt)
		e.wake.Push(execution.ID, outcome.WakeAt)

		e.publish(ctx, execution.ID, events.ExecutionWaiting{
			BaseEvent:   e.baseEvent(events.ExecutionWaitingEvent, workflow.ID),
			ExecutionID: execution.ID,
			StepID:      step.ID,
			WakeAt:      outcome.WakeAt,
		})

	case protocol.OutcomeBranch:
		next := workflow.GetNextStep(step.ID, outcome.Label)
		execution.Route(nextStepID(next), now)

	case protocol.OutcomeComplete:
		execution.Complete(now)

	default:
		return e.failExecution(ctx, execution,
			fmt.Sprintf("step %s produced unknown outcome %q", step.ID, outcome.Kind))
	}

	if err := e.persistence.SaveExecution(ctx, execution); err != nil {
		return execution, false, fmt.Errorf("failed to save execution %s: %w", execution.ID, err)
	}

	if execution.Status == models.ExecutionStatusCompleted {
		e.logger.InfoContext(ctx, "Execution completed",
			"execution_id", execution.ID,
			"workflow_id", workflow.ID,
			"completed_steps", len(execution.CompletedSteps))

		e.publish(ctx, execution.ID, events.ExecutionCompleted{
			BaseEvent:      e.baseEvent(events.ExecutionCompletedEvent, workflow.ID),
			ExecutionID:    execution.ID,
			CompletedSteps: execution.CompletedSteps,
			Duration:       execution.CompletedAt.Sub(execution.StartedAt),
		})
	}

	return execution, true, nil
}

// failExecution records a dispatch error as a terminal failed state.
// Step failures never propagate out of dispatch; one customer's failure
// must not abort a batch.
func (e *Engine) failExecution(ctx context.Context, execution *models.WorkflowExecution, detail string) (*models.WorkflowExecution, bool, error) {
	stepID := execution.CurrentStepID
	execution.Fail(detail, e.now())

	if err := e.persistence.SaveExecution(ctx, execution); err != nil {
		return execution, false, fmt.Errorf("failed to save failed execution %s: %w", execution.ID, err)
	}

	e.logger.ErrorContext(ctx, "Execution failed",
		"execution_id", execution.ID,
		"step_id", stepID,
		"error", detail)

	e.publish(ctx, execution.ID, events.ExecutionFailed{
		BaseEvent:   e.baseEvent(events.ExecutionFailedEvent, execution.WorkflowID),
		ExecutionID: execution.ID,
		StepID:      stepID,
		Error:       detail,
	})

	return execution, true, nil
}

func nextStepID(step *models.Step) string {
	if step == nil {
		return ""
	}

	return step.ID
}
