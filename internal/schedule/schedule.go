// Package schedule runs timed continuations on a virtual clock.
//
// Nothing here sleeps or spawns goroutines. The host advances the clock once
// per frame and due tasks run on the caller's goroutine, in due-time order.
// Tests advance the clock by arbitrary amounts to skip delays instantly.
package schedule

import (
	"container/heap"
	"time"
)

// Task is a scheduled continuation.
type Task func()

// Handle identifies a scheduled task so it can be cancelled.
type Handle uint64

type entry struct {
	due    time.Duration
	seq    uint64 // Ties on due run in scheduling order
	handle Handle
	task   Task
}

type queue []*entry

func (q queue) Len() int { return len(q) }
func (q queue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}
func (q queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *queue) Push(x any) { *q = append(*q, x.(*entry)) }
func (q *queue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return e
}

// Scheduler is a virtual-time task queue. It is not safe for concurrent use.
type Scheduler struct {
	now       time.Duration
	seq       uint64
	queue     queue
	cancelled map[Handle]struct{}
}

// New creates a scheduler at time zero.
func New() *Scheduler {
	return &Scheduler{cancelled: make(map[Handle]struct{})}
}

// After schedules task to run once d has elapsed on the virtual clock.
// A non-positive d runs on the next Advance.
func (s *Scheduler) After(d time.Duration, task Task) Handle {
	if d < 0 {
		d = 0
	}
	s.seq++
	h := Handle(s.seq)
	heap.Push(&s.queue, &entry{due: s.now + d, seq: s.seq, handle: h, task: task})
	return h
}

// Cancel drops a pending task. Returns false if it already ran or was unknown.
func (s *Scheduler) Cancel(h Handle) bool {
	for _, e := range s.queue {
		if e.handle == h {
			if _, gone := s.cancelled[h]; gone {
				return false
			}
			s.cancelled[h] = struct{}{}
			return true
		}
	}
	return false
}

// Advance moves the clock forward by dt and runs every task that falls due,
// including tasks scheduled by those tasks when they are also due.
// Returns the number of tasks run.
func (s *Scheduler) Advance(dt time.Duration) int {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt
	ran := 0
	for len(s.queue) > 0 && s.queue[0].due <= target {
		e := heap.Pop(&s.queue).(*entry)
		if _, gone := s.cancelled[e.handle]; gone {
			delete(s.cancelled, e.handle)
			continue
		}
		s.now = e.due
		e.task()
		ran++
	}
	s.now = target
	return ran
}

// RunAll advances until nothing is pending. Returns the number of tasks run.
func (s *Scheduler) RunAll() int {
	ran := 0
	for s.Pending() > 0 {
		ran += s.Advance(s.queue[0].due - s.now)
	}
	return ran
}

// Pending returns the number of tasks waiting to run.
func (s *Scheduler) Pending() int {
	return len(s.queue) - len(s.cancelled)
}

// Now returns the virtual clock.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Clear drops every pending task without running it.
func (s *Scheduler) Clear() {
	s.queue = s.queue[:0]
	clear(s.cancelled)
}
