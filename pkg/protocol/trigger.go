package protocol

import (
	"context"
	"log/slog"
)

// TriggerCallback starts workflow executions in response to an external
// event. The data map carries at least "customer_id"; "campaign_id" is
// optional correlation.
type TriggerCallback func(ctx context.Context, data map[string]any) error

type Trigger interface {
	Start(ctx context.Context, callback TriggerCallback) error
	Stop(ctx context.Context) error
	Validate() error
}

type TriggerFactory interface {
	Create(config map[string]any, logger *slog.Logger) (Trigger, error)
	ID() string
}

// SegmentPredicate reports whether a customer belongs to a segment. Used by
// the campaign layer feeding customers into the engine, never by the engine
// itself.
type SegmentPredicate interface {
	Matches(ctx context.Context, customerID string) (bool, error)
}
