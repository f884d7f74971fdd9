package conditions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outflowhq/outflow/pkg/models"
)

func TestEvaluate_UnknownConditionIsAnError(t *testing.T) {
	registry := NewDefaultRegistry()

	_, err := registry.Evaluate(context.Background(), "is_vip", &models.Customer{})
	assert.ErrorIs(t, err, ErrUnknownCondition)
}

func TestEvaluate_CustomPredicate(t *testing.T) {
	registry := NewRegistry()
	registry.Register("in_london", func(_ context.Context, c *models.Customer) (string, error) {
		if c.Location == "London" {
			return LabelTrue, nil
		}

		return LabelFalse, nil
	})

	label, err := registry.Evaluate(context.Background(), "in_london", &models.Customer{Location: "London"})
	require.NoError(t, err)
	assert.Equal(t, LabelTrue, label)
}

func TestZeroPurchases(t *testing.T) {
	ctx := context.Background()

	label, err := ZeroPurchases(ctx, &models.Customer{TotalPurchases: 0})
	require.NoError(t, err)
	assert.Equal(t, LabelTrue, label)

	label, err = ZeroPurchases(ctx, &models.Customer{TotalPurchases: 3})
	require.NoError(t, err)
	assert.Equal(t, LabelFalse, label)
}

func TestMessageOpened(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	opened := &models.Customer{Events: []models.CustomerEvent{
		{Type: models.EventEmailSent, OccurredAt: now},
		{Type: models.EventEmailOpened, OccurredAt: now},
	}}

	label, err := MessageOpened(ctx, opened)
	require.NoError(t, err)
	assert.Equal(t, LabelTrue, label)

	label, err = MessageOpened(ctx, &models.Customer{})
	require.NoError(t, err)
	assert.Equal(t, LabelFalse, label)
}

func TestCartNotConverted(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	tests := []struct {
		name     string
		customer *models.Customer
		want     string
	}{
		{
			name:     "no active cart",
			customer: &models.Customer{CartActive: false},
			want:     LabelFalse,
		},
		{
			name: "active cart never purchased",
			customer: &models.Customer{
				CartActive: true,
				Events: []models.CustomerEvent{
					{Type: models.EventCartUpdated, OccurredAt: now},
				},
			},
			want: LabelTrue,
		},
		{
			name: "purchase after last cart update",
			customer: &models.Customer{
				CartActive: true,
				Events: []models.CustomerEvent{
					{Type: models.EventCartUpdated, OccurredAt: now.Add(-time.Hour)},
					{Type: models.EventPurchase, OccurredAt: now},
				},
			},
			want: LabelFalse,
		},
		{
			name: "cart updated again after purchase",
			customer: &models.Customer{
				CartActive: true,
				Events: []models.CustomerEvent{
					{Type: models.EventPurchase, OccurredAt: now.Add(-time.Hour)},
					{Type: models.EventCartUpdated, OccurredAt: now},
				},
			},
			want: LabelTrue,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			label, err := CartNotConverted(ctx, tc.customer)
			require.NoError(t, err)
			assert.Equal(t, tc.want, label)
		})
	}
}
