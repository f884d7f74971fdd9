package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/outflowhq/outflow/pkg/models"
	"github.com/outflowhq/outflow/pkg/persistence"
)

// ExecutionRepository handles execution-related database operations.
type ExecutionRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewExecutionRepository(db *sql.DB, logger *slog.Logger) *ExecutionRepository {
	return &ExecutionRepository{db: db, logger: logger}
}

const executionColumns = `
	id
  , workflow_id
  , customer_id
  , campaign_id
  , current_step_id
  , status
  , completed_steps
  , results
  , error
  , started_at
  , next_step_at
  , completed_at
`

func (r *ExecutionRepository) GetAll(ctx context.Context) ([]*models.WorkflowExecution, error) {
	query := "SELECT " + executionColumns + " FROM executions ORDER BY started_at DESC"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query executions: %w", err)
	}

	defer func() {
		err := rows.Close()
		if err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	return collectExecutions(rows)
}

func (r *ExecutionRepository) GetByID(ctx context.Context, id string) (*models.WorkflowExecution, error) {
	query := "SELECT " + executionColumns + " FROM executions WHERE id = $1"

	execution, err := scanExecution(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.NewStoreError("ExecutionByID", id, persistence.ErrExecutionNotFound)
		}

		return nil, fmt.Errorf("failed to scan execution: %w", err)
	}

	return execution, nil
}

// Due returns waiting executions whose wake time is at or before the
// given instant. The partial index on next_step_at keeps this cheap.
func (r *ExecutionRepository) Due(ctx context.Context, at time.Time) ([]*models.WorkflowExecution, error) {
	query := "SELECT " + executionColumns + ` FROM executions
		WHERE status = 'waiting' AND next_step_at <= $1
		ORDER BY next_step_at ASC`

	rows, err := r.db.QueryContext(ctx, query, at)
	if err != nil {
		return nil, fmt.Errorf("failed to query due executions: %w", err)
	}

	defer func() {
		err := rows.Close()
		if err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	return collectExecutions(rows)
}

// Save upserts an execution's full state.
func (r *ExecutionRepository) Save(ctx context.Context, execution *models.WorkflowExecution) error {
	completedJSON, err := json.Marshal(execution.CompletedSteps)
	if err != nil {
		return fmt.Errorf("failed to marshal completed steps: %w", err)
	}

	resultsJSON, err := json.Marshal(execution.Results)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	query := `
		INSERT INTO executions (` + executionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			current_step_id = EXCLUDED.current_step_id
		  , status = EXCLUDED.status
		  , completed_steps = EXCLUDED.completed_steps
		  , results = EXCLUDED.results
		  , error = EXCLUDED.error
		  , next_step_at = EXCLUDED.next_step_at
		  , completed_at = EXCLUDED.completed_at
	`

	_, err = r.db.ExecContext(ctx, query,
		execution.ID,
		execution.WorkflowID,
		execution.CustomerID,
		nullString(execution.CampaignID),
		nullString(execution.CurrentStepID),
		string(execution.Status),
		completedJSON,
		resultsJSON,
		nullString(execution.Error),
		execution.StartedAt,
		execution.NextStepAt,
		execution.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save execution %s: %w", execution.ID, err)
	}

	return nil
}

func collectExecutions(rows *sql.Rows) ([]*models.WorkflowExecution, error) {
	executions := make([]*models.WorkflowExecution, 0)

	for rows.Next() {
		execution, err := scanExecution(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan execution: %w", err)
		}

		executions = append(executions, execution)
	}

	err := rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating executions: %w", err)
	}

	return executions, nil
}

func scanExecution(row rowScanner) (*models.WorkflowExecution, error) {
	var (
		execution     models.WorkflowExecution
		campaignID    sql.NullString
		currentStepID sql.NullString
		status        string
		completedJSON []byte
		resultsJSON   []byte
		errorDetail   sql.NullString
	)

	err := row.Scan(
		&execution.ID,
		&execution.WorkflowID,
		&execution.CustomerID,
		&campaignID,
		&currentStepID,
		&status,
		&completedJSON,
		&resultsJSON,
		&errorDetail,
		&execution.StartedAt,
		&execution.NextStepAt,
		&execution.CompletedAt,
	)
	if err != nil {
		return nil, err
	}

	execution.CampaignID = campaignID.String
	execution.CurrentStepID = currentStepID.String
	execution.Status = models.ExecutionStatus(status)
	execution.Error = errorDetail.String

	err = json.Unmarshal(completedJSON, &execution.CompletedSteps)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal completed steps: %w", err)
	}

	err = json.Unmarshal(resultsJSON, &execution.Results)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal results: %w", err)
	}

	return &execution, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
