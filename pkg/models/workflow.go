// Package models defines the core domain models for outreach workflow automation.
package models

import "time"

// Trigger describes the event that activates a workflow (segment entry,
// behavioral event, schedule). The engine never interprets it; the trigger
// providers at the edge do.
type Trigger struct {
	Type          string         `json:"type"`
	Configuration map[string]any `json:"configuration,omitempty"`
}

// ExitCondition describes an event that removes a customer from a workflow
// (e.g. unsubscribe). Checked by callers before dispatching, not enforced by
// the engine.
type ExitCondition struct {
	Event string `json:"event"`
}

// Workflow is an immutable definition of a step graph and its trigger.
type Workflow struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"        validate:"required,min=3"`
	Description    string          `json:"description"`
	Trigger        Trigger         `json:"trigger"`
	Steps          []*Step         `json:"steps"       validate:"required,min=1"`
	ExitConditions []ExitCondition `json:"exit_conditions,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// GetStep returns the step with the given id, or nil.
func (w *Workflow) GetStep(stepID string) *Step {
	for _, step := range w.Steps {
		if step.ID == stepID {
			return step
		}
	}

	return nil
}

// GetFirstStep returns the entry step of the workflow, or nil for an empty
// workflow.
func (w *Workflow) GetFirstStep() *Step {
	if len(w.Steps) == 0 {
		return nil
	}

	return w.Steps[0]
}

// GetNextStep resolves the successor of the given step. Branch entries are
// consulted first when present: the first entry whose label equals
// branchLabel wins, falling back to the first wildcard (empty label) entry.
// Steps without branches follow Next. A nil return signals termination.
func (w *Workflow) GetNextStep(currentStepID, branchLabel string) *Step {
	current := w.GetStep(currentStepID)
	if current == nil {
		return nil
	}

	if current.HasBranches() {
		for _, branch := range current.Branches {
			if branch.Label == branchLabel {
				return w.GetStep(branch.Next)
			}
		}

		for _, branch := range current.Branches {
			if branch.Label == "" {
				return w.GetStep(branch.Next)
			}
		}

		return nil
	}

	if current.Next == "" {
		return nil
	}

	return w.GetStep(current.Next)
}
