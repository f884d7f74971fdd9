package engine

import (
	"container/heap"
	"sync"
	"time"
)

// wakeQueue is a min-heap of parked executions keyed by wake time, so a
// tick pops only the due entries instead of scanning every execution.
// Entries may be stale (the execution was cancelled or already woken);
// dispatch treats those as no-ops.
type wakeQueue struct {
	mu    sync.Mutex
	items wakeHeap
}

type wakeItem struct {
	executionID string
	wakeAt      time.Time
}

func newWakeQueue() *wakeQueue {
	return &wakeQueue{items: make(wakeHeap, 0)}
}

func (q *wakeQueue) Push(executionID string, wakeAt time.Time) {
	q.mu.Lock()
	defer q.mu.Unlock()

	heap.Push(&q.items, wakeItem{executionID: executionID, wakeAt: wakeAt})
}

// PopDue removes and returns the ids of all entries due at the given
// instant.
func (q *wakeQueue) PopDue(now time.Time) []string {
	q.mu.Lock()
	defer q.mu.Unlock()

	due := make([]string, 0)

	for q.items.Len() > 0 && !q.items[0].wakeAt.After(now) {
		item := heap.Pop(&q.items).(wakeItem)
		due = append(due, item.executionID)
	}

	return due
}

func (q *wakeQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.items.Len()
}

type wakeHeap []wakeItem

func (h wakeHeap) Len() int { return len(h) }

func (h wakeHeap) Less(i, j int) bool { return h[i].wakeAt.Before(h[j].wakeAt) }

func (h wakeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *wakeHeap) Push(x any) {
	*h = append(*h, x.(wakeItem))
}

func (h *wakeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]

	return item
}
