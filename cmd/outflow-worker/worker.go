// Package main provides the Outflow worker that drives waiting executions
// forward and consumes enrollment messages.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/outflowhq/outflow/pkg/engine"
	"github.com/outflowhq/outflow/pkg/eventbus"
	"github.com/outflowhq/outflow/pkg/events"
	"github.com/outflowhq/outflow/pkg/otelhelper"
	"github.com/outflowhq/outflow/pkg/persistence"
	"github.com/outflowhq/outflow/pkg/protocol"
	"github.com/outflowhq/outflow/pkg/registry"
)

type WorkerConfig struct {
	TickInterval    time.Duration
	EnrollmentQueue string
	RedisAddr       string
}

type Worker struct {
	id       string
	engine   *engine.Engine
	registry *registry.Registry
	eventBus eventbus.EventBus
	logger   *slog.Logger
	config   WorkerConfig
	tracer   trace.Tracer
}

func NewWorker(
	id string,
	store persistence.Persistence,
	reg *registry.Registry,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
	config WorkerConfig,
) *Worker {
	return &Worker{
		id:       id,
		engine:   engine.New(store, reg, engine.WithEventBus(eventBus)),
		registry: reg,
		eventBus: eventBus,
		logger:   logger,
		config:   config,
	}
}

// Start runs the resumption driver until the context is cancelled or a
// termination signal arrives.
func (w *Worker) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracer, err := otelhelper.NewTracer(ctx, "outflow-worker")
	if err != nil {
		return err
	}

	w.tracer = tracer

	if err := w.subscribeEvents(ctx); err != nil {
		return err
	}

	trigger, err := w.startEnrollmentTrigger(ctx)
	if err != nil {
		return err
	}

	if trigger != nil {
		defer func() {
			if err := trigger.Stop(context.Background()); err != nil {
				w.logger.Error("Failed to stop enrollment trigger", "error", err)
			}
		}()
	}

	w.logger.InfoContext(ctx, "Worker started", "tick_interval", w.config.TickInterval)

	err = w.engine.Run(ctx, w.config.TickInterval)
	if errors.Is(err, context.Canceled) {
		w.logger.Info("Shutting down worker")

		return nil
	}

	return err
}

// subscribeEvents logs terminal execution events so operators can follow
// outcomes from the worker's output alone.
func (w *Worker) subscribeEvents(ctx context.Context) error {
	if err := w.eventBus.Handle(events.ExecutionCompletedEvent, func(ctx context.Context, event any) error {
		if completed, ok := event.(*events.ExecutionCompleted); ok {
			w.logger.InfoContext(ctx, "Execution completed",
				"execution_id", completed.ExecutionID,
				"workflow_id", completed.WorkflowID,
				"duration", completed.Duration)
		}

		return nil
	}); err != nil {
		return err
	}

	if err := w.eventBus.Handle(events.ExecutionFailedEvent, func(ctx context.Context, event any) error {
		if failed, ok := event.(*events.ExecutionFailed); ok {
			w.logger.WarnContext(ctx, "Execution failed",
				"execution_id", failed.ExecutionID,
				"workflow_id", failed.WorkflowID,
				"step_id", failed.StepID,
				"error", failed.Error)
		}

		return nil
	}); err != nil {
		return err
	}

	return w.eventBus.Subscribe(ctx)
}

// startEnrollmentTrigger wires the Redis queue trigger to the engine when
// an enrollment queue is configured.
func (w *Worker) startEnrollmentTrigger(ctx context.Context) (protocol.Trigger, error) {
	if w.config.EnrollmentQueue == "" {
		return nil, nil
	}

	trigger, err := w.registry.CreateTrigger("queue", map[string]any{
		"queue": w.config.EnrollmentQueue,
		"connection": map[string]any{
			"addr": w.config.RedisAddr,
		},
	})
	if err != nil {
		return nil, err
	}

	if err := trigger.Start(ctx, w.enroll); err != nil {
		return nil, err
	}

	w.logger.InfoContext(ctx, "Consuming enrollments", "queue", w.config.EnrollmentQueue)

	return trigger, nil
}

// enroll starts a customer on a workflow from a trigger payload and drives
// the new execution until it parks or terminates.
func (w *Worker) enroll(ctx context.Context, data map[string]any) error {
	workflowID, _ := data["workflow_id"].(string)
	customerID, _ := data["customer_id"].(string)
	campaignID, _ := data["campaign_id"].(string)

	if workflowID == "" {
		w.logger.WarnContext(ctx, "Dropping enrollment without workflow_id", "customer_id", customerID)

		return nil
	}

	ctx, span := otelhelper.StartSpan(ctx, w.tracer, "enroll",
		attribute.String(otelhelper.WorkflowIDKey, workflowID),
		attribute.String(otelhelper.CustomerIDKey, customerID),
		attribute.String(otelhelper.CampaignIDKey, campaignID),
		attribute.String(otelhelper.WorkerIDKey, w.id),
	)
	defer span.End()

	execution, err := w.engine.StartWorkflow(ctx, workflowID, customerID, campaignID)
	if err != nil {
		otelhelper.SetError(span, err)

		return err
	}

	span.SetAttributes(attribute.String(otelhelper.ExecutionIDKey, execution.ID))

	if _, err := w.engine.Drive(ctx, execution.ID); err != nil {
		otelhelper.SetError(span, err)

		return err
	}

	return nil
}
