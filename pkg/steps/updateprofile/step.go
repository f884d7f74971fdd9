// Package updateprofile implements the profile mutation step.
package updateprofile

import (
	"context"
	"fmt"
	"time"

	"github.com/outflowhq/outflow/pkg/models"
	"github.com/outflowhq/outflow/pkg/protocol"
)

// Step applies a fixed field→value map to the customer profile.
type Step struct {
	updates   map[string]any
	customers protocol.CustomerStore
}

func NewStep(config map[string]any, customers protocol.CustomerStore) (*Step, error) {
	updates, ok := config["updates"].(map[string]any)
	if !ok || len(updates) == 0 {
		return nil, fmt.Errorf("missing 'updates' in update_profile configuration")
	}

	return &Step{updates: updates, customers: customers}, nil
}

func (s *Step) Execute(ctx context.Context, execution *models.WorkflowExecution, now time.Time) (protocol.Outcome, error) {
	if err := s.customers.UpdateCustomer(ctx, execution.CustomerID, s.updates); err != nil {
		return protocol.Outcome{}, fmt.Errorf("failed to update customer %s: %w", execution.CustomerID, err)
	}

	return protocol.AdvanceWith(models.StepResult{
		Type:   models.StepTypeUpdateProfile,
		SentAt: now,
		Data:   s.updates,
	}), nil
}
