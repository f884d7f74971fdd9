package updateprofile

import (
	"github.com/outflowhq/outflow/pkg/models"
	"github.com/outflowhq/outflow/pkg/protocol"
)

type Factory struct {
	customers protocol.CustomerStore
}

func NewFactory(customers protocol.CustomerStore) *Factory {
	return &Factory{customers: customers}
}

func (f *Factory) Create(config map[string]any) (protocol.StepHandler, error) {
	return NewStep(config, f.customers)
}

func (f *Factory) ID() string {
	return string(models.StepTypeUpdateProfile)
}
