package registry

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outflowhq/outflow/pkg/models"
	"github.com/outflowhq/outflow/pkg/protocol"
)

type noopHandler struct{}

func (noopHandler) Execute(_ context.Context, _ *models.WorkflowExecution, _ time.Time) (protocol.Outcome, error) {
	return protocol.Advance(), nil
}

type noopFactory struct{ id string }

func (f noopFactory) Create(_ map[string]any) (protocol.StepHandler, error) {
	return noopHandler{}, nil
}

func (f noopFactory) ID() string { return f.id }

func TestRegistry_CreateStepHandler(t *testing.T) {
	registry := NewRegistry(slog.Default())
	registry.RegisterStep(noopFactory{id: "noop"})

	handler, err := registry.CreateStepHandler("noop", nil)
	require.NoError(t, err)
	assert.NotNil(t, handler)
}

func TestRegistry_UnknownStepType(t *testing.T) {
	registry := NewRegistry(slog.Default())

	_, err := registry.CreateStepHandler("missing", nil)
	assert.ErrorContains(t, err, "not registered")
}

func TestRegistry_AvailableSteps(t *testing.T) {
	registry := NewRegistry(slog.Default())
	registry.RegisterStep(noopFactory{id: "wait"})
	registry.RegisterStep(noopFactory{id: "condition"})

	assert.Equal(t, []string{"condition", "wait"}, registry.AvailableSteps())
	assert.True(t, registry.IsStepRegistered("wait"))
	assert.False(t, registry.IsStepRegistered("split"))
}
