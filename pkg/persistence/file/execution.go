package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/outflowhq/outflow/pkg/models"
	"github.com/outflowhq/outflow/pkg/persistence"
)

// ExecutionRepository handles execution state files.
type ExecutionRepository struct {
	root string
}

func NewExecutionRepository(root string) *ExecutionRepository {
	return &ExecutionRepository{root: root}
}

func (er *ExecutionRepository) dir() string {
	return path.Join(er.root, "executions")
}

func (er *ExecutionRepository) GetAll(ctx context.Context) ([]*models.WorkflowExecution, error) {
	root := os.DirFS(er.dir())

	jsonFiles, err := fs.Glob(root, "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list execution files: %w", err)
	}

	executions := make([]*models.WorkflowExecution, 0, len(jsonFiles))

	for _, file := range jsonFiles {
		executionID := file[:len(file)-len(".json")]

		execution, err := er.GetByID(ctx, executionID)
		if err != nil {
			return nil, err
		}

		executions = append(executions, execution)
	}

	return executions, nil
}

func (er *ExecutionRepository) GetByID(_ context.Context, executionID string) (*models.WorkflowExecution, error) {
	filePath := filepath.Clean(path.Join(er.dir(), executionID+".json"))

	body, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, persistence.NewStoreError("ExecutionByID", executionID, persistence.ErrExecutionNotFound)
		}

		return nil, fmt.Errorf("failed to fetch execution %s: %w", executionID, err)
	}

	var execution models.WorkflowExecution

	err = json.Unmarshal(body, &execution)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal execution %s: %w", executionID, err)
	}

	return &execution, nil
}

func (er *ExecutionRepository) Save(_ context.Context, execution *models.WorkflowExecution) error {
	err := os.MkdirAll(er.dir(), 0750)
	if err != nil {
		return fmt.Errorf("failed to create executions directory: %w", err)
	}

	data, err := json.MarshalIndent(execution, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal execution %s: %w", execution.ID, err)
	}

	return os.WriteFile(path.Join(er.dir(), execution.ID+".json"), data, 0600)
}

// Due returns waiting executions whose wake time is at or before the
// given instant.
func (er *ExecutionRepository) Due(ctx context.Context, at time.Time) ([]*models.WorkflowExecution, error) {
	executions, err := er.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	due := make([]*models.WorkflowExecution, 0)

	for _, execution := range executions {
		if execution.Status != models.ExecutionStatusWaiting || execution.NextStepAt == nil {
			continue
		}

		if !execution.NextStepAt.After(at) {
			due = append(due, execution)
		}
	}

	return due, nil
}
