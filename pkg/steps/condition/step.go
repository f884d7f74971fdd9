// Package condition implements the branching steps. Both condition and
// split steps evaluate a named predicate against the customer profile and
// route the execution along the branch matching the resulting label.
package condition

import (
	"context"
	"fmt"
	"time"

	"github.com/outflowhq/outflow/pkg/conditions"
	"github.com/outflowhq/outflow/pkg/models"
	"github.com/outflowhq/outflow/pkg/protocol"
)

// Step evaluates one named condition and branches on its label.
type Step struct {
	condition string
	registry  *conditions.Registry
	customers protocol.CustomerStore
}

func NewStep(config map[string]any, registry *conditions.Registry, customers protocol.CustomerStore) (*Step, error) {
	name, _ := config["condition"].(string)
	if name == "" {
		return nil, fmt.Errorf("missing 'condition' in branching step configuration")
	}

	return &Step{
		condition: name,
		registry:  registry,
		customers: customers,
	}, nil
}

func (s *Step) Execute(ctx context.Context, execution *models.WorkflowExecution, _ time.Time) (protocol.Outcome, error) {
	customer, err := s.customers.GetCustomer(ctx, execution.CustomerID)
	if err != nil {
		return protocol.Outcome{}, fmt.Errorf("failed to load customer %s: %w", execution.CustomerID, err)
	}

	label, err := s.registry.Evaluate(ctx, s.condition, customer)
	if err != nil {
		return protocol.Outcome{}, fmt.Errorf("failed to evaluate condition '%s': %w", s.condition, err)
	}

	return protocol.BranchTo(label), nil
}
