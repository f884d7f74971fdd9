package queue

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrigger(t *testing.T) {
	trigger, err := NewTrigger(map[string]any{
		"queue": "outflow:enrollments",
		"connection": map[string]any{
			"addr": "redis:6379",
			"db":   "2",
		},
	}, slog.Default())
	require.NoError(t, err)
	assert.Equal(t, "outflow:enrollments", trigger.Queue)
	assert.Equal(t, "redis:6379", trigger.Connection["addr"])
	assert.Equal(t, "2", trigger.Connection["db"])
	assert.True(t, trigger.Enabled)
}

func TestNewTrigger_RequiresQueue(t *testing.T) {
	_, err := NewTrigger(map[string]any{}, slog.Default())
	assert.ErrorContains(t, err, "queue name is required")
}

func TestParseEnrollment(t *testing.T) {
	data, err := parseEnrollment(`{"customer_id":"cust-1","workflow_id":"wf-1","campaign_id":"camp-1"}`)
	require.NoError(t, err)
	assert.Equal(t, "cust-1", data["customer_id"])
	assert.Equal(t, "wf-1", data["workflow_id"])
	assert.Equal(t, "camp-1", data["campaign_id"])
	assert.NotEmpty(t, data["timestamp"])
}

func TestParseEnrollment_KeepsProvidedTimestamp(t *testing.T) {
	data, err := parseEnrollment(`{"customer_id":"cust-1","timestamp":"2026-03-01T12:00:00Z"}`)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01T12:00:00Z", data["timestamp"])
}

func TestParseEnrollment_RejectsNonJSON(t *testing.T) {
	_, err := parseEnrollment("not json")
	assert.ErrorContains(t, err, "not a JSON object")
}

func TestParseEnrollment_RequiresCustomerID(t *testing.T) {
	_, err := parseEnrollment(`{"campaign_id":"camp-1"}`)
	assert.ErrorContains(t, err, "missing customer_id")
}

func TestFactory(t *testing.T) {
	factory := NewFactory()
	assert.Equal(t, "queue", factory.ID())

	_, err := factory.Create(nil, slog.Default())
	assert.ErrorIs(t, err, ErrConfigNil)

	trigger, err := factory.Create(map[string]any{"queue": "outflow:enrollments"}, slog.Default())
	require.NoError(t, err)
	assert.NotNil(t, trigger)
}
