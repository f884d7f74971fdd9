package wait

import (
	"github.com/outflowhq/outflow/pkg/models"
	"github.com/outflowhq/outflow/pkg/protocol"
)

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(config map[string]any) (protocol.StepHandler, error) {
	return NewStep(config)
}

func (f *Factory) ID() string {
	return string(models.StepTypeWait)
}
