package event

import (
	"sync/atomic"

	"github.com/lixenwraith/vi-saber/parameter"
)

// Queue is a lock-free MPSC ring buffer of feedback, usable as a Sink
// Thread-Safety:
//   - Notify: Lock-free CAS, multiple producers OK
//   - Consume: Single consumer (render/audio loop)
//   - Published flags prevent reading partial writes
//
// Overflow: Oldest events overwritten when full
type Queue struct {
	events    [parameter.FeedbackQueueSize]Feedback
	published [parameter.FeedbackQueueSize]atomic.Bool
	head      atomic.Uint64 // Read index
	tail      atomic.Uint64 // Write index
}

func NewQueue() *Queue {
	return &Queue{}
}

// Notify pushes f. O(1) amortized
func (q *Queue) Notify(f Feedback) {
	for {
		currentTail := q.tail.Load()
		nextTail := currentTail + 1

		if q.tail.CompareAndSwap(currentTail, nextTail) {
			idx := currentTail & parameter.FeedbackQueueMask

			q.events[idx] = f
			q.published[idx].Store(true) // MUST be after write

			// Advance head if overwriting unread events
			currentHead := q.head.Load()
			if nextTail-currentHead > parameter.FeedbackQueueSize {
				q.head.CompareAndSwap(currentHead, nextTail-parameter.FeedbackQueueSize)
			}
			return
		}
	}
}

// Consume returns all pending events in FIFO order and advances head
func (q *Queue) Consume() []Feedback {
	for {
		currentHead := q.head.Load()
		currentTail := q.tail.Load()

		if currentTail == currentHead {
			return nil
		}

		maxAvailable := currentTail - currentHead
		if maxAvailable > parameter.FeedbackQueueSize {
			maxAvailable = parameter.FeedbackQueueSize
			currentHead = currentTail - parameter.FeedbackQueueSize
		}

		result := make([]Feedback, 0, maxAvailable)
		for i := uint64(0); i < maxAvailable; i++ {
			idx := (currentHead + i) & parameter.FeedbackQueueMask

			if !q.published[idx].Load() {
				break // Writer incomplete
			}

			result = append(result, q.events[idx])
			q.published[idx].Store(false)
		}

		newHead := currentHead + uint64(len(result))
		if q.head.CompareAndSwap(currentHead, newHead) {
			if len(result) == 0 {
				return nil
			}
			return result
		}
	}
}

// Len returns approximate pending event count
func (q *Queue) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail <= head {
		return 0
	}
	diff := int(tail - head)
	if diff > parameter.FeedbackQueueSize {
		return parameter.FeedbackQueueSize
	}
	return diff
}
