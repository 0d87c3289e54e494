package tablecfg

import "sync"

// Scheduler defers work to the next tick of the host's event loop.
type Scheduler interface {
	Defer(fn func())
}

// Immediate runs deferred work inline.
type Immediate struct{}

// Defer runs fn now.
func (Immediate) Defer(fn func()) { fn() }

// Queue holds deferred work until the host drains it.
type Queue struct {
	mu      sync.Mutex
	pending []func()
}

// Defer queues fn.
func (q *Queue) Defer(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, fn)
}

// Len returns the number of queued functions.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Drain runs every queued function in order. Work queued while draining
// waits for the next call.
func (q *Queue) Drain() int {
	q.mu.Lock()
	pending := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
	return len(pending)
}
