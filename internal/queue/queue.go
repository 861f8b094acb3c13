// Package queue holds records between the host call and the recorder.
package queue

import (
	"sync"
)

// Queue is a generic thread-safe FIFO with an optional capacity.
type Queue[T any] struct {
	mu    sync.Mutex
	items []T
	limit int // 0 means unbounded
}

// New creates a new empty queue holding at most limit items. A limit of
// zero or less leaves it unbounded.
func New[T any](limit int) *Queue[T] {
	if limit < 0 {
		limit = 0
	}
	return &Queue[T]{
		items: make([]T, 0),
		limit: limit,
	}
}

// TryPush appends item unless the queue is full.
func (q *Queue[T]) TryPush(item T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.limit > 0 && len(q.items) >= q.limit {
		return false
	}
	q.items = append(q.items, item)
	return true
}

// Push appends items regardless of the limit, for putting back a batch
// that failed to write.
func (q *Queue[T]) Push(items ...T) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, items...)
}

// Pop removes and returns the first item.
func (q *Queue[T]) Pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	item := q.items[0]
	q.items = q.items[1:]
	return item, true
}

// Len returns the number of items in the queue.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Limit is the capacity given to New, 0 when unbounded.
func (q *Queue[T]) Limit() int {
	return q.limit
}

// Clear removes all items from the queue.
func (q *Queue[T]) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = q.items[:0]
}

// GetAndEmpty returns all items in arrival order and clears the queue.
func (q *Queue[T]) GetAndEmpty() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	result := q.items
	q.items = make([]T, 0, cap(q.items))
	return result
}
