package webhook

import (
	"github.com/outflowhq/outflow/pkg/models"
	"github.com/outflowhq/outflow/pkg/protocol"
)

type Factory struct {
	invoker protocol.HookInvoker
}

func NewFactory(invoker protocol.HookInvoker) *Factory {
	return &Factory{invoker: invoker}
}

func (f *Factory) Create(config map[string]any) (protocol.StepHandler, error) {
	return NewStep(config, f.invoker)
}

func (f *Factory) ID() string {
	return string(models.StepTypeWebhook)
}
