// Package persistence provides the storage abstraction for workflow
// definitions and execution state.
package persistence

import (
	"context"
	"time"

	"github.com/outflowhq/outflow/pkg/models"
)

type Persistence interface {
	Workflows(ctx context.Context) ([]*models.Workflow, error)
	SaveWorkflow(ctx context.Context, workflow *models.Workflow) error
	WorkflowByID(ctx context.Context, id string) (*models.Workflow, error)
	DeleteWorkflow(ctx context.Context, id string) error

	Executions(ctx context.Context) ([]*models.WorkflowExecution, error)
	SaveExecution(ctx context.Context, execution *models.WorkflowExecution) error
	ExecutionByID(ctx context.Context, id string) (*models.WorkflowExecution, error)
	// DueExecutions returns waiting executions whose wake time is at or
	// before the given instant.
	DueExecutions(ctx context.Context, at time.Time) ([]*models.WorkflowExecution, error)

	HealthCheck(ctx context.Context) error

	Close(ctx context.Context) error
}
