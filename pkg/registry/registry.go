// Package registry maps step types and trigger types to the factories
// that build their handlers.
package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/outflowhq/outflow/pkg/protocol"
)

type Registry struct {
	logger           *slog.Logger
	stepFactories    map[string]protocol.StepHandlerFactory
	triggerFactories map[string]protocol.TriggerFactory
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:           logger,
		stepFactories:    make(map[string]protocol.StepHandlerFactory),
		triggerFactories: make(map[string]protocol.TriggerFactory),
	}
}

func (r *Registry) RegisterStep(factory protocol.StepHandlerFactory) {
	r.stepFactories[factory.ID()] = factory
}

func (r *Registry) RegisterTrigger(factory protocol.TriggerFactory) {
	r.triggerFactories[factory.ID()] = factory
}

// CreateStepHandler builds a handler for the given step type from its
// step configuration.
func (r *Registry) CreateStepHandler(stepType string, config map[string]any) (protocol.StepHandler, error) {
	factory, ok := r.stepFactories[stepType]
	if !ok {
		return nil, fmt.Errorf("step type '%s' not registered", stepType)
	}

	return factory.Create(config)
}

func (r *Registry) CreateTrigger(triggerType string, config map[string]any) (protocol.Trigger, error) {
	factory, ok := r.triggerFactories[triggerType]
	if !ok {
		return nil, fmt.Errorf("trigger type '%s' not registered", triggerType)
	}

	return factory.Create(config, r.logger)
}

// AvailableSteps lists registered step types in sorted order.
func (r *Registry) AvailableSteps() []string {
	types := make([]string, 0, len(r.stepFactories))
	for stepType := range r.stepFactories {
		types = append(types, stepType)
	}

	sort.Strings(types)

	return types
}

func (r *Registry) IsStepRegistered(stepType string) bool {
	_, exists := r.stepFactories[stepType]

	return exists
}
