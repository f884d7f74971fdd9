package models

import (
	"errors"
	"fmt"
)

// Definition errors, fatal to starting any execution of the workflow.
var (
	ErrNoSteps            = errors.New("workflow has no steps")
	ErrDuplicateStepID    = errors.New("duplicate step id")
	ErrDanglingReference  = errors.New("step references unknown step")
	ErrWildcardNotLast    = errors.New("wildcard branch must be the last entry")
	ErrBranchesOnNonSplit = errors.New("branches are only valid on condition and split steps")
	ErrCycleWithoutWait   = errors.New("cycle without a wait step")
)

// Validate checks a workflow definition at construction time: unique step
// ids, no dangling next/branch references, wildcard branches last, and no
// cycle reachable from the first step that avoids a wait step. Cycles
// passing through a wait step are legal (periodic nurture loops).
func (w *Workflow) Validate() error {
	if len(w.Steps) == 0 {
		return ErrNoSteps
	}

	byID := make(map[string]*Step, len(w.Steps))

	for _, step := range w.Steps {
		if _, exists := byID[step.ID]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateStepID, step.ID)
		}

		byID[step.ID] = step
	}

	for _, step := range w.Steps {
		if err := validateStepLinks(step, byID); err != nil {
			return err
		}
	}

	return w.checkCycles(byID)
}

func validateStepLinks(step *Step, byID map[string]*Step) error {
	if step.Next != "" {
		if _, ok := byID[step.Next]; !ok {
			return fmt.Errorf("%w: %s -> %s", ErrDanglingReference, step.ID, step.Next)
		}
	}

	if !step.HasBranches() {
		return nil
	}

	if !step.IsRouting() {
		return fmt.Errorf("%w: %s", ErrBranchesOnNonSplit, step.ID)
	}

	for i, branch := range step.Branches {
		if _, ok := byID[branch.Next]; !ok {
			return fmt.Errorf("%w: %s -> %s", ErrDanglingReference, step.ID, branch.Next)
		}

		if branch.Label == "" && i != len(step.Branches)-1 {
			return fmt.Errorf("%w: step %s", ErrWildcardNotLast, step.ID)
		}
	}

	return nil
}

// checkCycles walks every edge reachable from the first step. A back edge
// closes a cycle; the cycle is legal only if some step on it is a wait.
func (w *Workflow) checkCycles(byID map[string]*Step) error {
	const (
		unvisited = 0
		inStack   = 1
		done      = 2
	)

	state := make(map[string]int, len(byID))
	stack := make([]string, 0, len(byID))

	var visit func(id string) error

	visit = func(id string) error {
		state[id] = inStack
		stack = append(stack, id)

		for _, next := range successors(byID[id]) {
			switch state[next] {
			case inStack:
				if !cycleHasWait(stack, next, byID) {
					return fmt.Errorf("%w: via step %s", ErrCycleWithoutWait, next)
				}
			case unvisited:
				if err := visit(next); err != nil {
					return err
				}
			}
		}

		stack = stack[:len(stack)-1]
		state[id] = done

		return nil
	}

	first := w.GetFirstStep()
	if err := visit(first.ID); err != nil {
		return err
	}

	return nil
}

func successors(step *Step) []string {
	if step == nil {
		return nil
	}

	if step.HasBranches() {
		next := make([]string, 0, len(step.Branches))
		for _, branch := range step.Branches {
			next = append(next, branch.Next)
		}

		return next
	}

	if step.Next == "" {
		return nil
	}

	return []string{step.Next}
}

func cycleHasWait(stack []string, entry string, byID map[string]*Step) bool {
	start := 0
	for i, id := range stack {
		if id == entry {
			start = i

			break
		}
	}

	for _, id := range stack[start:] {
		if byID[id].Type == StepTypeWait {
			return true
		}
	}

	return false
}
