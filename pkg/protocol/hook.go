package protocol

import "context"

// HookResult is the acknowledgment returned by an external hook.
type HookResult struct {
	StatusCode int
	Body       any
}

// HookInvoker calls an external hook with a JSON payload.
type HookInvoker interface {
	Call(ctx context.Context, target string, payload map[string]any) (HookResult, error)
}
