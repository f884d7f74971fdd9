// Package wait implements the timed delay step.
package wait

import (
	"context"
	"fmt"
	"time"

	"github.com/outflowhq/outflow/pkg/models"
	"github.com/outflowhq/outflow/pkg/protocol"
)

// Step parks an execution until its configured duration elapses. On
// re-entry after the scheduled wake time the wait is satisfied and the
// execution advances.
type Step struct {
	duration time.Duration
}

func NewStep(config map[string]any) (*Step, error) {
	raw, _ := config["duration"].(string)
	if raw == "" {
		return &Step{duration: models.DefaultWait}, nil
	}

	duration, err := models.ParseWaitDuration(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid wait configuration: %w", err)
	}

	return &Step{duration: duration}, nil
}

func (s *Step) Execute(_ context.Context, execution *models.WorkflowExecution, now time.Time) (protocol.Outcome, error) {
	// Re-entry: the execution was parked here and the driver woke it.
	if execution.Status == models.ExecutionStatusWaiting && execution.NextStepAt != nil {
		if !now.Before(*execution.NextStepAt) {
			return protocol.Advance(), nil
		}

		// Woken early; keep the original wake time.
		return protocol.Park(*execution.NextStepAt), nil
	}

	wakeAt := now.Add(s.duration)
	if !wakeAt.After(now) {
		return protocol.Advance(), nil
	}

	return protocol.Park(wakeAt), nil
}
