// Package schedule provides a cron based trigger for recurring campaign
// kickoffs.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/outflowhq/outflow/pkg/protocol"
)

type Trigger struct {
	ID         string
	CronExpr   string
	WorkflowID string
	CampaignID string
	Data       map[string]any
	Enabled    bool

	cron     *cron.Cron
	callback protocol.TriggerCallback
	logger   *slog.Logger
}

func NewTrigger(config map[string]any, logger *slog.Logger) (*Trigger, error) {
	id, _ := config["id"].(string)
	cronExpr, _ := config["cron"].(string)
	workflowID, _ := config["workflow_id"].(string)
	campaignID, _ := config["campaign_id"].(string)
	data, _ := config["data"].(map[string]any)

	enabled := true
	if value, ok := config["enabled"].(bool); ok {
		enabled = value
	}

	trigger := &Trigger{
		ID:         id,
		CronExpr:   cronExpr,
		WorkflowID: workflowID,
		CampaignID: campaignID,
		Data:       data,
		Enabled:    enabled,
		logger: logger.With(
			"module", "schedule_trigger",
			"id", id,
			"cron", cronExpr,
			"workflow_id", workflowID,
		),
	}

	if err := trigger.Validate(); err != nil {
		return nil, err
	}

	return trigger, nil
}

func (t *Trigger) Validate() error {
	if t.ID == "" {
		return errors.New("schedule trigger ID is required")
	}

	if t.CronExpr == "" {
		return errors.New("schedule trigger cron expression is required")
	}

	if _, err := cron.ParseStandard(t.CronExpr); err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}

	return nil
}

func (t *Trigger) Start(ctx context.Context, callback protocol.TriggerCallback) error {
	if !t.Enabled {
		t.logger.InfoContext(ctx, "Schedule trigger is disabled")

		return nil
	}

	t.logger.InfoContext(ctx, "Starting schedule trigger")
	t.callback = callback

	t.cron = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
		cron.Recover(cron.DefaultLogger),
	))

	entryID, err := t.cron.AddFunc(t.CronExpr, t.fire)
	if err != nil {
		return fmt.Errorf("failed to add cron job for trigger %s: %w", t.ID, err)
	}

	t.logger.InfoContext(ctx, "Added cron job for trigger", "entry_id", entryID)
	t.cron.Start()

	return nil
}

// fire builds the kickoff payload and hands it to the callback. The
// callback owns resolving the campaign's audience into executions.
func (t *Trigger) fire() {
	t.logger.Info("Cron schedule fired")

	data := map[string]any{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	for k, v := range t.Data {
		data[k] = v
	}

	if t.WorkflowID != "" {
		data["workflow_id"] = t.WorkflowID
	}

	if t.CampaignID != "" {
		data["campaign_id"] = t.CampaignID
	}

	go func() {
		if err := t.callback(context.Background(), data); err != nil {
			t.logger.Error("Error starting executions for schedule trigger", "error", err)
		}
	}()
}

func (t *Trigger) Stop(ctx context.Context) error {
	t.logger.InfoContext(ctx, "Stopping schedule trigger", "id", t.ID)

	if t.cron != nil {
		t.cron.Stop()
	}

	return nil
}
