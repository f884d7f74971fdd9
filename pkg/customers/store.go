// Package customers provides the in-memory customer store used by the
// engine's dispatcher and condition predicates.
package customers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/outflowhq/outflow/pkg/models"
)

var ErrCustomerNotFound = errors.New("customer not found")

// Store is a concurrency-safe in-memory customer store. Profiles are
// copied on read so callers never share mutable state with the store.
type Store struct {
	mu        sync.RWMutex
	customers map[string]*models.Customer
}

func NewStore() *Store {
	return &Store{customers: make(map[string]*models.Customer)}
}

// Save inserts or replaces a customer profile.
func (s *Store) Save(customer *models.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *customer
	s.customers[customer.ID] = &clone
}

// GetCustomer returns a copy of the customer profile.
func (s *Store) GetCustomer(_ context.Context, id string) (*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customer, ok := s.customers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCustomerNotFound, id)
	}

	clone := *customer

	return &clone, nil
}

// UpdateCustomer applies a field→value map to a stored profile. Unknown
// fields land in the attributes map, mirroring how profile-update steps
// carry custom traits.
func (s *Store) UpdateCustomer(_ context.Context, id string, updates map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.customers[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrCustomerNotFound, id)
	}

	for field, value := range updates {
		applyUpdate(customer, field, value)
	}

	customer.UpdatedAt = time.Now().UTC()

	return nil
}

// RecordEvent appends a behavioral event to the customer's history.
func (s *Store) RecordEvent(_ context.Context, id string, event models.CustomerEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.customers[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrCustomerNotFound, id)
	}

	customer.Events = append(customer.Events, event)

	return nil
}

func applyUpdate(customer *models.Customer, field string, value any) {
	switch field {
	case "email":
		customer.Email, _ = value.(string)
	case "phone":
		customer.Phone, _ = value.(string)
	case "first_name":
		customer.FirstName, _ = value.(string)
	case "last_name":
		customer.LastName, _ = value.(string)
	case "location":
		customer.Location, _ = value.(string)
	case "cart_active":
		customer.CartActive, _ = value.(bool)
	case "total_purchases":
		switch v := value.(type) {
		case int:
			customer.TotalPurchases = v
		case float64:
			customer.TotalPurchases = int(v)
		}
	default:
		if customer.Attributes == nil {
			customer.Attributes = make(map[string]any)
		}

		customer.Attributes[field] = value
	}
}
