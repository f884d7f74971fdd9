package condition

import (
	"github.com/outflowhq/outflow/pkg/conditions"
	"github.com/outflowhq/outflow/pkg/models"
	"github.com/outflowhq/outflow/pkg/protocol"
)

// Factory creates branching step handlers. The same handler serves both
// the condition and split step types; only the registered ID differs.
type Factory struct {
	id        string
	registry  *conditions.Registry
	customers protocol.CustomerStore
}

func NewFactory(registry *conditions.Registry, customers protocol.CustomerStore) *Factory {
	return &Factory{id: string(models.StepTypeCondition), registry: registry, customers: customers}
}

func NewSplitFactory(registry *conditions.Registry, customers protocol.CustomerStore) *Factory {
	return &Factory{id: string(models.StepTypeSplit), registry: registry, customers: customers}
}

func (f *Factory) Create(config map[string]any) (protocol.StepHandler, error) {
	return NewStep(config, f.registry, f.customers)
}

func (f *Factory) ID() string {
	return f.id
}
