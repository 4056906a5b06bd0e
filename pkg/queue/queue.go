// Package queue provides a mutex-guarded FIFO queue
package queue

import (
	"sync"

	"github.com/jzx17/wakeworker/pkg/types"
)

var _ types.Queue[string] = (*SafeQueue[string])(nil)

// SafeQueue is a FIFO queue safe for concurrent use.
//
// It is a guarded queue, not a blocking one: Pop, Front and Back never wait
// for a value to arrive and return types.ErrEmptyQueue instead.
type SafeQueue[T any] struct {
	items []T
	head  int
	mu    sync.Mutex
}

// New creates an empty queue
func New[T any]() *SafeQueue[T] {
	return &SafeQueue[T]{}
}

// Push appends value to the back of the queue
func (q *SafeQueue[T]) Push(value T) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, value)
}

// TryPush appends value only if the guard can be taken without waiting.
// It returns false, and the value is not queued, when the guard is busy.
func (q *SafeQueue[T]) TryPush(value T) bool {
	if !q.mu.TryLock() {
		return false
	}
	defer q.mu.Unlock()
	q.items = append(q.items, value)
	return true
}

// Pop removes and returns the front value
func (q *SafeQueue[T]) Pop() (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.lenLocked() == 0 {
		var zero T
		return zero, types.ErrEmptyQueue
	}
	return q.popLocked(), nil
}

// TryPop removes and returns the front value without waiting for the guard.
// A busy guard and an empty queue both report false.
func (q *SafeQueue[T]) TryPop() (T, bool) {
	var zero T
	if !q.mu.TryLock() {
		return zero, false
	}
	defer q.mu.Unlock()

	if q.lenLocked() == 0 {
		return zero, false
	}
	return q.popLocked(), true
}

// PopN removes up to max values from the front in one guard acquisition
func (q *SafeQueue[T]) PopN(max int) []T {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := q.lenLocked()
	if max < n {
		n = max
	}
	if n <= 0 {
		return []T{}
	}

	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, q.popLocked())
	}
	return out
}

// Front returns the front value without removing it
func (q *SafeQueue[T]) Front() (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.lenLocked() == 0 {
		var zero T
		return zero, types.ErrEmptyQueue
	}
	return q.items[q.head], nil
}

// Back returns the back value without removing it
func (q *SafeQueue[T]) Back() (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.lenLocked() == 0 {
		var zero T
		return zero, types.ErrEmptyQueue
	}
	return q.items[len(q.items)-1], nil
}

// IsEmpty reports whether the queue holds no values
func (q *SafeQueue[T]) IsEmpty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.lenLocked() == 0
}

// Size returns the number of queued values
func (q *SafeQueue[T]) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.lenLocked()
}

// Clear drops every queued value and returns how many were dropped
func (q *SafeQueue[T]) Clear() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := q.lenLocked()
	q.items = nil
	q.head = 0
	return n
}

func (q *SafeQueue[T]) lenLocked() int {
	return len(q.items) - q.head
}

// popLocked requires a non-empty queue
func (q *SafeQueue[T]) popLocked() T {
	var zero T
	v := q.items[q.head]
	q.items[q.head] = zero // release reference for GC
	q.head++

	// reclaim the consumed prefix once it is at least half the slice
	if q.head*2 >= len(q.items) {
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
	return v
}
