// Package end implements the explicit terminal step.
package end

import (
	"context"
	"time"

	"github.com/outflowhq/outflow/pkg/models"
	"github.com/outflowhq/outflow/pkg/protocol"
)

// Step completes the execution unconditionally.
type Step struct{}

func NewStep() *Step {
	return &Step{}
}

func (s *Step) Execute(_ context.Context, _ *models.WorkflowExecution, _ time.Time) (protocol.Outcome, error) {
	return protocol.Complete(), nil
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(_ map[string]any) (protocol.StepHandler, error) {
	return NewStep(), nil
}

func (f *Factory) ID() string {
	return string(models.StepTypeEnd)
}
