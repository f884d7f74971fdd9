// Package hooks performs outbound HTTP calls for webhook steps.
package hooks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/outflowhq/outflow/pkg/log"
	"github.com/outflowhq/outflow/pkg/protocol"
)

const (
	defaultTimeoutSeconds = 30
	maxResponseBytes      = 1 << 20
)

// HTTPInvoker implements protocol.HookInvoker over net/http with a
// bounded per-call timeout and simple retry.
type HTTPInvoker struct {
	client   *http.Client
	attempts int
	delay    time.Duration
	logger   *slog.Logger
}

type Option func(*HTTPInvoker)

// WithRetry sets the attempt count and the delay between attempts.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(i *HTTPInvoker) {
		if attempts > 0 {
			i.attempts = attempts
		}

		i.delay = delay
	}
}

// WithHTTPClient replaces the underlying client, mainly for tests.
func WithHTTPClient(client *http.Client) Option {
	return func(i *HTTPInvoker) {
		i.client = client
	}
}

func NewHTTPInvoker(opts ...Option) *HTTPInvoker {
	invoker := &HTTPInvoker{
		client:   &http.Client{Timeout: defaultTimeoutSeconds * time.Second},
		attempts: 1,
		logger:   log.WithModule("hooks"),
	}

	for _, opt := range opts {
		opt(invoker)
	}

	return invoker
}

// Call POSTs the payload as JSON to target. Non-2xx responses are
// returned as errors so webhook steps fail the execution.
func (i *HTTPInvoker) Call(ctx context.Context, target string, payload map[string]any) (protocol.HookResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return protocol.HookResult{}, fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	var lastErr error

	for attempt := 1; attempt <= i.attempts; attempt++ {
		if attempt > 1 {
			i.logger.InfoContext(ctx, "Retrying webhook call", "target", target, "attempt", attempt)

			select {
			case <-ctx.Done():
				return protocol.HookResult{}, ctx.Err()
			case <-time.After(i.delay):
			}
		}

		result, err := i.call(ctx, target, body)
		if err == nil {
			return result, nil
		}

		lastErr = err
	}

	return protocol.HookResult{}, lastErr
}

func (i *HTTPInvoker) call(ctx context.Context, target string, body []byte) (protocol.HookResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return protocol.HookResult{}, fmt.Errorf("failed to build webhook request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := i.client.Do(req)
	if err != nil {
		return protocol.HookResult{}, fmt.Errorf("webhook call to %s failed: %w", target, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return protocol.HookResult{}, fmt.Errorf("failed to read webhook response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return protocol.HookResult{}, fmt.Errorf("webhook call to %s returned status %d", target, resp.StatusCode)
	}

	return protocol.HookResult{StatusCode: resp.StatusCode, Body: string(respBody)}, nil
}
