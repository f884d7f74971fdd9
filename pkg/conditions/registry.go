// Package conditions provides the registry of named predicates used by
// condition and split steps to pick a branch label.
package conditions

import (
	"context"
	"errors"
	"fmt"

	"github.com/outflowhq/outflow/pkg/models"
)

// Branch labels produced by boolean predicates.
const (
	LabelTrue  = "true"
	LabelFalse = "false"
)

// ErrUnknownCondition indicates a descriptor naming a predicate that was
// never registered. Unknown predicates fail the dispatch instead of
// silently defaulting, since an always-true default corrupts branch
// statistics.
var ErrUnknownCondition = errors.New("unknown condition")

// Predicate inspects a customer snapshot and returns a branch label. Each
// predicate declares the attribute or event it reads in its doc comment and
// nowhere else.
type Predicate func(ctx context.Context, customer *models.Customer) (string, error)

// Registry maps condition names to predicates.
type Registry struct {
	predicates map[string]Predicate
}

func NewRegistry() *Registry {
	return &Registry{predicates: make(map[string]Predicate)}
}

// NewDefaultRegistry returns a registry with the built-in predicate set.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(ConditionZeroPurchases, ZeroPurchases)
	r.Register(ConditionMessageOpened, MessageOpened)
	r.Register(ConditionCartNotConverted, CartNotConverted)

	return r
}

func (r *Registry) Register(name string, predicate Predicate) {
	r.predicates[name] = predicate
}

// Evaluate resolves the named condition against a customer snapshot.
func (r *Registry) Evaluate(ctx context.Context, name string, customer *models.Customer) (string, error) {
	predicate, ok := r.predicates[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCondition, name)
	}

	return predicate(ctx, customer)
}

// Names returns the registered condition names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.predicates))
	for name := range r.predicates {
		names = append(names, name)
	}

	return names
}
