// Package protocol defines the contracts between the engine and its
// collaborators: step handlers, customer storage, channel senders, hook
// invokers and triggers.
package protocol

import (
	"context"
	"time"

	"github.com/outflowhq/outflow/pkg/models"
)

// OutcomeKind classifies the state transition a step dispatch produced.
type OutcomeKind string

const (
	// OutcomeAdvance moves the execution to the step's successor.
	OutcomeAdvance OutcomeKind = "advance"
	// OutcomePark suspends the execution until WakeAt.
	OutcomePark OutcomeKind = "park"
	// OutcomeBranch routes the execution along the branch with Label.
	OutcomeBranch OutcomeKind = "branch"
	// OutcomeComplete terminates the execution successfully.
	OutcomeComplete OutcomeKind = "complete"
)

// Outcome is the result of dispatching one step. Handler errors are
// returned separately and converted by the engine into a failed execution.
type Outcome struct {
	Kind   OutcomeKind
	WakeAt time.Time
	Label  string
	Result *models.StepResult
}

func Advance() Outcome {
	return Outcome{Kind: OutcomeAdvance}
}

func AdvanceWith(result models.StepResult) Outcome {
	return Outcome{Kind: OutcomeAdvance, Result: &result}
}

func Park(wakeAt time.Time) Outcome {
	return Outcome{Kind: OutcomePark, WakeAt: wakeAt}
}

func BranchTo(label string) Outcome {
	return Outcome{Kind: OutcomeBranch, Label: label}
}

func Complete() Outcome {
	return Outcome{Kind: OutcomeComplete}
}

// StepHandler performs one step type's side effect and reports the
// resulting transition. Handlers must not retain the execution.
type StepHandler interface {
	Execute(ctx context.Context, execution *models.WorkflowExecution, now time.Time) (Outcome, error)
}

// StepHandlerFactory builds a handler from a step's configuration.
type StepHandlerFactory interface {
	Create(config map[string]any) (StepHandler, error)
	ID() string
}
