package condition

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outflowhq/outflow/pkg/conditions"
	"github.com/outflowhq/outflow/pkg/customers"
	"github.com/outflowhq/outflow/pkg/models"
	"github.com/outflowhq/outflow/pkg/protocol"
)

func TestExecute_BranchesOnLabel(t *testing.T) {
	store := customers.NewStore()
	store.Save(&models.Customer{ID: "c1", TotalPurchases: 0})

	step, err := NewStep(map[string]any{"condition": conditions.ConditionZeroPurchases},
		conditions.NewDefaultRegistry(), store)
	require.NoError(t, err)

	execution := &models.WorkflowExecution{CustomerID: "c1"}

	outcome, err := step.Execute(context.Background(), execution, time.Now().UTC())
	require.NoError(t, err)

	assert.Equal(t, protocol.OutcomeBranch, outcome.Kind)
	assert.Equal(t, conditions.LabelTrue, outcome.Label)
}

func TestExecute_UnknownConditionFails(t *testing.T) {
	store := customers.NewStore()
	store.Save(&models.Customer{ID: "c1"})

	step, err := NewStep(map[string]any{"condition": "is_vip"},
		conditions.NewDefaultRegistry(), store)
	require.NoError(t, err)

	execution := &models.WorkflowExecution{CustomerID: "c1"}

	_, err = step.Execute(context.Background(), execution, time.Now().UTC())
	assert.ErrorIs(t, err, conditions.ErrUnknownCondition)
}

func TestNewStep_MissingCondition(t *testing.T) {
	_, err := NewStep(map[string]any{}, conditions.NewDefaultRegistry(), customers.NewStore())
	assert.ErrorContains(t, err, "condition")
}
