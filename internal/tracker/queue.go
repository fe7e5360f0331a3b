package tracker

import (
	"context"
	"errors"
	"sync"

	"statetrack/internal/state"
)

// ErrClosed is returned by Report once the pipeline has been shut down.
var ErrClosed = errors.New("state update queue closed")

// sendQueue wraps the bounded update channel with an idempotent close, so
// producers get an error instead of a send-on-closed panic after shutdown.
// Ordering is strictly FIFO across all producers.
type sendQueue struct {
	ch chan state.TrackedData

	mu     sync.RWMutex
	closed bool
}

func newSendQueue(capacity int) *sendQueue {
	return &sendQueue{ch: make(chan state.TrackedData, capacity)}
}

// send enqueues one update. It blocks while the queue is full and returns
// the context error if ctx ends first. The read lock is held for the whole
// send so close cannot race with an in-flight enqueue.
func (q *sendQueue) send(ctx context.Context, td state.TrackedData) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrClosed
	}
	select {
	case q.ch <- td:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// close shuts the producer side. Safe to call more than once.
func (q *sendQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.ch)
	}
}
