// Package cmd provides common initialization functions for command-line
// applications.
package cmd

import (
	"log/slog"
	"time"

	"github.com/outflowhq/outflow/pkg/conditions"
	"github.com/outflowhq/outflow/pkg/hooks"
	"github.com/outflowhq/outflow/pkg/protocol"
	"github.com/outflowhq/outflow/pkg/registry"
	"github.com/outflowhq/outflow/pkg/senders"
	"github.com/outflowhq/outflow/pkg/steps/condition"
	"github.com/outflowhq/outflow/pkg/steps/end"
	"github.com/outflowhq/outflow/pkg/steps/sendmessage"
	"github.com/outflowhq/outflow/pkg/steps/updateprofile"
	"github.com/outflowhq/outflow/pkg/steps/wait"
	"github.com/outflowhq/outflow/pkg/steps/webhook"
	"github.com/outflowhq/outflow/pkg/triggers/queue"
	"github.com/outflowhq/outflow/pkg/triggers/schedule"
)

const (
	webhookRetries    = 3
	webhookRetryDelay = time.Second
)

func registerNativeSteps(reg *registry.Registry, customerStore protocol.CustomerStore) {
	conditionRegistry := conditions.NewDefaultRegistry()
	invoker := hooks.NewHTTPInvoker(hooks.WithRetry(webhookRetries, webhookRetryDelay))

	reg.RegisterStep(sendmessage.NewFactory(customerStore, senders.DefaultSenders()))
	reg.RegisterStep(wait.NewFactory())
	reg.RegisterStep(condition.NewFactory(conditionRegistry, customerStore))
	reg.RegisterStep(condition.NewSplitFactory(conditionRegistry, customerStore))
	reg.RegisterStep(updateprofile.NewFactory(customerStore))
	reg.RegisterStep(webhook.NewFactory(invoker))
	reg.RegisterStep(end.NewFactory())
}

func registerNativeTriggers(reg *registry.Registry) {
	reg.RegisterTrigger(schedule.NewFactory())
	reg.RegisterTrigger(queue.NewFactory())
}

func NewRegistry(logger *slog.Logger, customerStore protocol.CustomerStore) *registry.Registry {
	reg := registry.NewRegistry(logger)

	registerNativeSteps(reg, customerStore)
	registerNativeTriggers(reg)

	return reg
}
