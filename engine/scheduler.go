package engine

import (
	"container/heap"
	"time"
)

// Scheduler runs one-shot deferred actions on the tick that first reaches their deadline
// Actions hold a key, never the object; alive is consulted right before firing and a
// dead key turns the action into a no-op. Not goroutine-safe: owned by the tick loop
type Scheduler[K comparable] struct {
	queue actionQueue[K]
	alive func(K) bool
	seq   uint64
}

type deferredAction[K comparable] struct {
	deadline time.Time
	seq      uint64
	key      K
	fn       func(K)
}

// NewScheduler creates a scheduler; a nil alive treats every key as live
func NewScheduler[K comparable](alive func(K) bool) *Scheduler[K] {
	if alive == nil {
		alive = func(K) bool { return true }
	}
	return &Scheduler[K]{alive: alive}
}

// After schedules fn(key) for the first RunDue at or after deadline
// Actions with equal deadlines fire in scheduling order
func (s *Scheduler[K]) After(deadline time.Time, key K, fn func(K)) {
	s.seq++
	heap.Push(&s.queue, deferredAction[K]{deadline: deadline, seq: s.seq, key: key, fn: fn})
}

// RunDue fires every action whose deadline is not after now and returns how many fired
// Skipped actions for dead keys are dropped and not counted
func (s *Scheduler[K]) RunDue(now time.Time) int {
	fired := 0
	for s.queue.Len() > 0 && !s.queue[0].deadline.After(now) {
		a := heap.Pop(&s.queue).(deferredAction[K])
		if !s.alive(a.key) {
			continue
		}
		a.fn(a.key)
		fired++
	}
	return fired
}

// Len returns the number of pending actions
func (s *Scheduler[K]) Len() int {
	return s.queue.Len()
}

// NextDeadline returns the earliest pending deadline
func (s *Scheduler[K]) NextDeadline() (time.Time, bool) {
	if s.queue.Len() == 0 {
		return time.Time{}, false
	}
	return s.queue[0].deadline, true
}

// Clear drops all pending actions
func (s *Scheduler[K]) Clear() {
	s.queue = s.queue[:0]
}

// actionQueue is a min-heap by deadline, then seq
type actionQueue[K comparable] []deferredAction[K]

func (q actionQueue[K]) Len() int { return len(q) }

func (q actionQueue[K]) Less(i, j int) bool {
	if q[i].deadline.Equal(q[j].deadline) {
		return q[i].seq < q[j].seq
	}
	return q[i].deadline.Before(q[j].deadline)
}

func (q actionQueue[K]) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *actionQueue[K]) Push(x any) {
	*q = append(*q, x.(deferredAction[K]))
}

func (q *actionQueue[K]) Pop() any {
	old := *q
	n := len(old)
	a := old[n-1]
	old[n-1] = deferredAction[K]{}
	*q = old[:n-1]
	return a
}
