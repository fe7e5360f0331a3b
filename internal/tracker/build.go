package tracker

import (
	"context"

	"statetrack/internal/config"
)

// Build wires the bounded queue, binds the tracker socket, and starts the
// tracker's run loop in the background. The returned client carries the
// placeholder identity DefaultID; callers rename it. A bind failure is
// returned before anything starts.
func Build(ctx context.Context, cfg config.Tracking, capacity int) (*Client, error) {
	queue := newSendQueue(capacity)
	tr, err := New(cfg.SenderSocket, cfg.ReceiverSocket, queue.ch)
	if err != nil {
		return nil, err
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		tr.Run(ctx)
	}()
	client := newClient(DefaultID, queue, cfg.UpdateInterval())
	client.done = done
	return client, nil
}
