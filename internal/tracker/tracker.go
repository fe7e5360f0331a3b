// Tracker draining the update queue onto a unixgram socket
package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"os"

	"statetrack/internal/logging"
	"statetrack/internal/state"
)

// Tracker is the single consumer of the update queue. It serializes each
// TrackedData to JSON and sends it as one datagram to the receiver path.
// Delivery is best effort: send and serialization failures are logged and
// the message is dropped, the loop keeps running.
type Tracker struct {
	queue        <-chan state.TrackedData
	conn         *net.UnixConn
	receiverAddr *net.UnixAddr
	senderPath   string
}

// New binds the sender socket. A bind failure is fatal to the pipeline and
// is returned to the caller; the tracker never starts half-initialized.
func New(senderPath, receiverPath string, queue <-chan state.TrackedData) (*Tracker, error) {
	conn, err := net.ListenUnixgram("unixgram", &net.UnixAddr{Name: senderPath, Net: "unixgram"})
	if err != nil {
		return nil, fmt.Errorf("bind sender socket %s: %w", senderPath, err)
	}
	return &Tracker{
		queue:        queue,
		conn:         conn,
		receiverAddr: &net.UnixAddr{Name: receiverPath, Net: "unixgram"},
		senderPath:   senderPath,
	}, nil
}

// Run consumes the queue until it is closed and drained, then releases the
// socket. Cancelling ctx stops the loop early without draining.
func (t *Tracker) Run(ctx context.Context) {
	log := logging.FromContext(ctx)
	log.Info("tracker running", "sender", t.senderPath, "receiver", t.receiverAddr.Name)
	defer t.close(log)

	for {
		select {
		case td, ok := <-t.queue:
			if !ok {
				log.Info("update queue closed, tracker stopping")
				return
			}
			t.emit(log, td)
		case <-ctx.Done():
			log.Info("tracker stopping")
			return
		}
	}
}

func (t *Tracker) emit(log *slog.Logger, td state.TrackedData) {
	data, err := json.Marshal(td)
	if err != nil {
		log.Error("serialize state update failed", "id", td.ID, "err", err)
		return
	}
	if _, err := t.conn.WriteToUnix(data, t.receiverAddr); err != nil {
		log.Error("send state update failed", "id", td.ID, "err", err)
		return
	}
	log.Debug("state update sent", "id", td.ID, "state", td.State.String())
}

func (t *Tracker) close(log *slog.Logger) {
	if err := t.conn.Close(); err != nil {
		log.Error("close sender socket failed", "err", err)
	}
	if err := os.Remove(t.senderPath); err != nil && !os.IsNotExist(err) {
		log.Error("remove sender socket failed", "path", t.senderPath, "err", err)
	}
}
