// Package file provides file-based persistence for workflows and
// executions, one JSON document per record.
package file

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/outflowhq/outflow/pkg/models"
)

// Persistence implements the persistence.Persistence interface on the
// file system.
type Persistence struct {
	root       string
	workflows  *WorkflowRepository
	executions *ExecutionRepository
}

// NewPersistence creates a file persistence layer rooted at the given
// directory. A "file://" prefix is accepted and stripped.
func NewPersistence(root string) *Persistence {
	cleanRoot := strings.Replace(root, "file://", "", 1)

	return &Persistence{
		root:       cleanRoot,
		workflows:  NewWorkflowRepository(cleanRoot),
		executions: NewExecutionRepository(cleanRoot),
	}
}

func (p *Persistence) Workflows(ctx context.Context) ([]*models.Workflow, error) {
	return p.workflows.GetAll(ctx)
}

func (p *Persistence) SaveWorkflow(ctx context.Context, workflow *models.Workflow) error {
	return p.workflows.Save(ctx, workflow)
}

func (p *Persistence) WorkflowByID(ctx context.Context, id string) (*models.Workflow, error) {
	return p.workflows.GetByID(ctx, id)
}

func (p *Persistence) DeleteWorkflow(ctx context.Context, id string) error {
	return p.workflows.Delete(ctx, id)
}

func (p *Persistence) Executions(ctx context.Context) ([]*models.WorkflowExecution, error) {
	return p.executions.GetAll(ctx)
}

func (p *Persistence) SaveExecution(ctx context.Context, execution *models.WorkflowExecution) error {
	return p.executions.Save(ctx, execution)
}

func (p *Persistence) ExecutionByID(ctx context.Context, id string) (*models.WorkflowExecution, error) {
	return p.executions.GetByID(ctx, id)
}

func (p *Persistence) DueExecutions(ctx context.Context, at time.Time) ([]*models.WorkflowExecution, error) {
	return p.executions.Due(ctx, at)
}

// HealthCheck verifies the root directory exists.
func (p *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(p.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

// Close is a no-op for file persistence.
func (p *Persistence) Close(_ context.Context) error {
	return nil
}
