package engine

import (
	"context"
	"time"

	"github.com/outflowhq/outflow/pkg/models"
)

// Tick advances every waiting execution whose wake time is at or before
// now by one transition, and returns the ids of the executions that
// changed. Due executions come from the in-process wake queue plus a
// store scan, so executions parked before a restart are still picked up.
func (e *Engine) Tick(ctx context.Context, now time.Time) ([]string, error) {
	seen := make(map[string]struct{})
	candidates := e.wake.PopDue(now)

	for _, id := range candidates {
		seen[id] = struct{}{}
	}

	due, err := e.persistence.DueExecutions(ctx, now)
	if err != nil {
		return nil, err
	}

	for _, execution := range due {
		if _, ok := seen[execution.ID]; ok {
			continue
		}

		seen[execution.ID] = struct{}{}
		candidates = append(candidates, execution.ID)
	}

	woken := make([]string, 0, len(candidates))

	for _, id := range candidates {
		changed, err := e.tickOne(ctx, id)
		if err != nil {
			// Transient: the execution stays waiting and the store scan
			// on a later tick retries it.
			e.logger.WarnContext(ctx, "Tick dispatch failed",
				"execution_id", id,
				"error", err)

			continue
		}

		if changed {
			woken = append(woken, id)
		}
	}

	return woken, nil
}

func (e *Engine) tickOne(ctx context.Context, executionID string) (bool, error) {
	lock := e.lockFor(executionID)
	lock.Lock()
	defer lock.Unlock()

	// Only the driver moves executions out of waiting. An execution a
	// concurrent tick already woke is left alone.
	execution, err := e.persistence.ExecutionByID(ctx, executionID)
	if err != nil {
		return false, err
	}

	if execution.Status != models.ExecutionStatusWaiting {
		return false, nil
	}

	_, changed, err := e.dispatchLocked(ctx, executionID)

	return changed, err
}

// Run drives the engine on a fixed cadence until the context is
// cancelled. Each tick wakes due executions and then drives them until
// they park again or terminate.
func (e *Engine) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	e.logger.InfoContext(ctx, "Scheduling driver started", "interval", interval)

	for {
		select {
		case <-ctx.Done():
			e.logger.InfoContext(ctx, "Scheduling driver stopped")

			return ctx.Err()
		case <-ticker.C:
			woken, err := e.Tick(ctx, e.now())
			if err != nil {
				e.logger.ErrorContext(ctx, "Tick failed", "error", err)

				continue
			}

			for _, id := range woken {
				if _, err := e.Drive(ctx, id); err != nil {
					e.logger.ErrorContext(ctx, "Failed to drive woken execution",
						"execution_id", id,
						"error", err)
				}
			}
		}
	}
}
