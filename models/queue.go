// Package models implements small concurrency safe containers for
// consumers of the codec packages. The codec itself never depends
// on them.
package models

import (
	"slices"
	"sync"
)

/* BOUNDED QUEUE */

// First in first out queue with a fixed capacity. Pushing past the
// capacity silently discards the oldest entries until the size fits
// again. Safe to use from multiple producers and consumers.
type Queue[T any] struct {
	mut  sync.Mutex
	data []T
	max  int
}

/* FUNCTIONS */

// Returns a preallocated queue that will never hold more than the
// given amount of elements.
func NewQueue[T any](max uint) Queue[T] {
	return Queue[T]{
		data: make([]T, 0, max),
		max:  int(max),
	}
}

// Appends an element to the back and then evicts from the front
// until the queue fits its capacity again. The capacity check and
// the eviction happen under the same lock so that concurrent
// producers can not race past the limit.
func (q *Queue[T]) Push(v T) {
	q.mut.Lock()
	defer q.mut.Unlock()

	q.data = append(q.data, v)
	for len(q.data) > q.max {
		q.data = slices.Delete(q.data, 0, 1)
	}
}

// Removes and returns the oldest element. The boolean is false when
// the queue is empty.
func (q *Queue[T]) Pop() (T, bool) {
	q.mut.Lock()
	defer q.mut.Unlock()

	if len(q.data) == 0 {
		var empty T
		return empty, false
	}

	v := q.data[0]
	q.data = slices.Delete(q.data, 0, 1)
	return v, true
}

// Returns the amount of stored elements.
func (q *Queue[T]) Len() int {
	q.mut.Lock()
	defer q.mut.Unlock()
	return len(q.data)
}

// Returns the maximum amount of elements the queue retains.
func (q *Queue[T]) Cap() int {
	return q.max
}

// Returns a copy of the stored elements from oldest to newest so
// that it can be safely traversed by a single goroutine.
func (q *Queue[T]) Copy() []T {
	q.mut.Lock()
	defer q.mut.Unlock()

	if len(q.data) == 0 {
		return nil
	}

	dest := make([]T, 0, len(q.data))
	dest = append(dest, q.data...)
	return dest
}
