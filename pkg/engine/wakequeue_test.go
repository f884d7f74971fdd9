package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWakeQueue_PopDueOrdering(t *testing.T) {
	q := newWakeQueue()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	q.Push("late", base.Add(3*time.Hour))
	q.Push("early", base.Add(time.Hour))
	q.Push("middle", base.Add(2*time.Hour))

	assert.Empty(t, q.PopDue(base))
	assert.Equal(t, 3, q.Len())

	assert.Equal(t, []string{"early", "middle"}, q.PopDue(base.Add(2*time.Hour)))
	assert.Equal(t, 1, q.Len())

	assert.Equal(t, []string{"late"}, q.PopDue(base.Add(4*time.Hour)))
	assert.Equal(t, 0, q.Len())
}

func TestWakeQueue_DueAtExactInstant(t *testing.T) {
	q := newWakeQueue()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	q.Push("e1", at)

	assert.Equal(t, []string{"e1"}, q.PopDue(at))
}
