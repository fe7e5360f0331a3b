package tracker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"statetrack/internal/state"
)

// DefaultID is the placeholder identity of the client returned by Build.
// Callers are expected to Rename it once they know their component name.
const DefaultID = "default"

// Client is the per-reporter reporting handle. Clones share the sending
// side of the update queue; the identifier and rate-limit timer are kept
// per clone. A Client is safe for concurrent use.
type Client struct {
	queue    *sendQueue
	interval time.Duration
	now      func() time.Time
	done     <-chan struct{}

	mu       sync.Mutex
	id       string
	lastSent time.Time
}

func newClient(id string, queue *sendQueue, interval time.Duration) *Client {
	return &Client{
		queue:    queue,
		interval: interval,
		now:      time.Now,
		id:       id,
	}
}

// Clone returns an independent handle sharing the same queue. The new
// clone starts with the current identifier and rate-limit timer and
// diverges from there.
func (c *Client) Clone() *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	return &Client{
		queue:    c.queue,
		interval: c.interval,
		now:      c.now,
		done:     c.done,
		id:       c.id,
		lastSent: c.lastSent,
	}
}

// Rename replaces the identifier for subsequent reports. Updates already
// in flight keep the identity they were captured with.
func (c *Client) Rename(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.id = id
}

// ID returns the current identifier.
func (c *Client) ID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.id
}

// Report publishes a state update into the pipeline.
//
// Non-error states reported within the update interval of the last
// successful send are suppressed: the call is a no-op returning nil, and
// the timer is untouched. Error states are never suppressed. Any update
// that is actually enqueued, error or not, advances the timer.
//
// Report may block while the queue is full; the caller's context bounds
// the wait. A closed queue surfaces as an error wrapping ErrClosed.
func (c *Client) Report(ctx context.Context, st state.State) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Avoid spamming Idle and Valid states.
	if !st.IsError() && !c.lastSent.IsZero() && c.now().Sub(c.lastSent) < c.interval {
		return nil
	}

	td := state.New(c.id, st, c.now().UTC())
	if err := c.queue.send(ctx, td); err != nil {
		return fmt.Errorf("send state update for %q: %w", c.id, err)
	}
	c.lastSent = c.now()
	return nil
}

// Close shuts down the pipeline's producer side. All clones stop
// accepting reports; the tracker drains what was already enqueued and
// then terminates. Safe to call on any clone, more than once.
func (c *Client) Close() {
	c.queue.close()
}

// Done is closed once the tracker has drained the queue and released its
// socket. Nil for clients not created through Build.
func (c *Client) Done() <-chan struct{} {
	return c.done
}
