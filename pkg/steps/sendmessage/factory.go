package sendmessage

import (
	"github.com/outflowhq/outflow/pkg/models"
	"github.com/outflowhq/outflow/pkg/protocol"
)

// Factory creates send_message step handlers bound to the customer store
// and the registered channel senders.
type Factory struct {
	customers protocol.CustomerStore
	senders   map[string]protocol.ChannelSender
}

func NewFactory(customers protocol.CustomerStore, senders map[string]protocol.ChannelSender) *Factory {
	return &Factory{customers: customers, senders: senders}
}

func (f *Factory) Create(config map[string]any) (protocol.StepHandler, error) {
	return NewStep(config, f.customers, f.senders)
}

func (f *Factory) ID() string {
	return string(models.StepTypeSendMessage)
}
