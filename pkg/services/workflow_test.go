package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outflowhq/outflow/pkg/models"
	"github.com/outflowhq/outflow/pkg/persistence"
	"github.com/outflowhq/outflow/pkg/persistence/memory"
)

func validWorkflow() *models.Workflow {
	return &models.Workflow{
		Name: "Welcome series",
		Steps: []*models.Step{
			{ID: "hello", Type: models.StepTypeSendMessage, Next: "done",
				Config: map[string]any{"channel": "email", "body": "Hi {{first_name}}"}},
			{ID: "done", Type: models.StepTypeEnd},
		},
	}
}

func newService() *Workflow {
	return NewWorkflow(memory.NewPersistence(), nil)
}

func TestCreate_AssignsIDAndPersists(t *testing.T) {
	service := newService()
	ctx := context.Background()

	created, err := service.Create(ctx, validWorkflow())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	loaded, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Welcome series", loaded.Name)
}

func TestCreate_RejectsNilAndEmpty(t *testing.T) {
	service := newService()
	ctx := context.Background()

	_, err := service.Create(ctx, nil)
	assert.ErrorIs(t, err, ErrWorkflowNil)
	assert.True(t, IsValidationError(err))

	_, err = service.Create(ctx, &models.Workflow{Name: "No steps"})
	assert.ErrorIs(t, err, ErrStepsRequired)
}

func TestCreate_RejectsBadStepConfig(t *testing.T) {
	service := newService()

	workflow := validWorkflow()
	workflow.Steps[0].Config = map[string]any{"channel": "telegraph"}

	_, err := service.Create(context.Background(), workflow)
	assert.ErrorIs(t, err, ErrInvalidStepConfig)
	assert.True(t, IsValidationError(err))
}

func TestCreate_RejectsBrokenGraph(t *testing.T) {
	service := newService()

	workflow := validWorkflow()
	workflow.Steps[0].Next = "missing"

	_, err := service.Create(context.Background(), workflow)
	assert.ErrorIs(t, err, ErrInvalidGraph)
}

func TestUpdate_KeepsIdentityAndCreationTime(t *testing.T) {
	service := newService()
	ctx := context.Background()

	created, err := service.Create(ctx, validWorkflow())
	require.NoError(t, err)

	replacement := validWorkflow()
	replacement.Name = "Welcome series v2"

	updated, err := service.Update(ctx, created.ID, replacement)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Welcome series v2", updated.Name)
}

func TestUpdate_RejectsIDMismatch(t *testing.T) {
	service := newService()
	ctx := context.Background()

	created, err := service.Create(ctx, validWorkflow())
	require.NoError(t, err)

	replacement := validWorkflow()
	replacement.ID = "other-id"

	_, err = service.Update(ctx, created.ID, replacement)
	assert.ErrorIs(t, err, ErrWorkflowIDMismatch)
	assert.True(t, IsConflictError(err))
}

func TestDelete(t *testing.T) {
	service := newService()
	ctx := context.Background()

	created, err := service.Create(ctx, validWorkflow())
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, created.ID))

	_, err = service.Get(ctx, created.ID)
	assert.True(t, persistence.IsWorkflowNotFound(err))
}
