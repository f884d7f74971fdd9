package customers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outflowhq/outflow/pkg/models"
)

func TestStore_GetCustomerReturnsCopy(t *testing.T) {
	store := NewStore()
	store.Save(&models.Customer{ID: "c1", Email: "a@example.com"})

	got, err := store.GetCustomer(context.Background(), "c1")
	require.NoError(t, err)

	got.Email = "mutated@example.com"

	again, err := store.GetCustomer(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", again.Email)
}

func TestStore_GetCustomerNotFound(t *testing.T) {
	store := NewStore()

	_, err := store.GetCustomer(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestStore_UpdateCustomer(t *testing.T) {
	store := NewStore()
	store.Save(&models.Customer{ID: "c1"})

	err := store.UpdateCustomer(context.Background(), "c1", map[string]any{
		"first_name":      "Ada",
		"total_purchases": float64(2),
		"vip":             true,
	})
	require.NoError(t, err)

	customer, err := store.GetCustomer(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", customer.FirstName)
	assert.Equal(t, 2, customer.TotalPurchases)
	assert.Equal(t, true, customer.Attributes["vip"])
	assert.False(t, customer.UpdatedAt.IsZero())
}

func TestStore_RecordEvent(t *testing.T) {
	store := NewStore()
	store.Save(&models.Customer{ID: "c1"})

	err := store.RecordEvent(context.Background(), "c1", models.CustomerEvent{
		Type:       models.EventEmailOpened,
		OccurredAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	customer, err := store.GetCustomer(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, customer.HasEvent(models.EventEmailOpened))
}
