package hooks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPInvoker_Call(t *testing.T) {
	var received map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	invoker := NewHTTPInvoker()

	result, err := invoker.Call(context.Background(), server.URL, map[string]any{"customer_id": "c1"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, result.StatusCode)
	body, ok := result.Body.(string)
	require.True(t, ok)
	assert.JSONEq(t, `{"ok":true}`, body)
	assert.Equal(t, "c1", received["customer_id"])
}

func TestHTTPInvoker_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	invoker := NewHTTPInvoker()

	_, err := invoker.Call(context.Background(), server.URL, nil)
	assert.ErrorContains(t, err, "status 502")
}

func TestHTTPInvoker_Retries(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)

			return
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	invoker := NewHTTPInvoker(WithRetry(3, time.Millisecond))

	result, err := invoker.Call(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
}
