// Package webhook implements the external-call step.
package webhook

import (
	"context"
	"fmt"
	"time"

	"github.com/outflowhq/outflow/pkg/models"
	"github.com/outflowhq/outflow/pkg/protocol"
)

// Step invokes an external hook with the configured payload, enriched
// with execution correlation fields, and records the acknowledgment.
type Step struct {
	target  string
	payload map[string]any
	invoker protocol.HookInvoker
}

func NewStep(config map[string]any, invoker protocol.HookInvoker) (*Step, error) {
	target, _ := config["target"].(string)
	if target == "" {
		return nil, fmt.Errorf("missing 'target' in webhook configuration")
	}

	payload, _ := config["payload"].(map[string]any)

	return &Step{target: target, payload: payload, invoker: invoker}, nil
}

func (s *Step) Execute(ctx context.Context, execution *models.WorkflowExecution, now time.Time) (protocol.Outcome, error) {
	payload := map[string]any{
		"execution_id": execution.ID,
		"workflow_id":  execution.WorkflowID,
		"customer_id":  execution.CustomerID,
	}
	for k, v := range s.payload {
		payload[k] = v
	}

	result, err := s.invoker.Call(ctx, s.target, payload)
	if err != nil {
		return protocol.Outcome{}, fmt.Errorf("webhook step failed: %w", err)
	}

	return protocol.AdvanceWith(models.StepResult{
		Type:   models.StepTypeWebhook,
		SentAt: now,
		Data: map[string]any{
			"target":      s.target,
			"status_code": result.StatusCode,
		},
	}), nil
}
