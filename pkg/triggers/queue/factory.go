package queue

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/outflowhq/outflow/pkg/protocol"
)

var ErrConfigNil = errors.New("config cannot be nil")

type Factory struct{}

func NewFactory() protocol.TriggerFactory {
	return &Factory{}
}

func (f *Factory) ID() string {
	return "queue"
}

func (f *Factory) Create(config map[string]any, logger *slog.Logger) (protocol.Trigger, error) {
	if config == nil {
		return nil, ErrConfigNil
	}

	trigger, err := NewTrigger(config, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create queue trigger: %w", err)
	}

	return trigger, nil
}
