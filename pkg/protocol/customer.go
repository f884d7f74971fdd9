package protocol

import (
	"context"

	"github.com/outflowhq/outflow/pkg/models"
)

// CustomerStore is the customer profile collaborator. The engine reads
// snapshots for personalization and condition evaluation, and writes
// field updates for update-profile steps.
type CustomerStore interface {
	GetCustomer(ctx context.Context, id string) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, id string, updates map[string]any) error
}
