// Receiver consuming state update datagrams from the tracker
package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"

	"statetrack/internal/logging"
	"statetrack/internal/state"
)

// maxDatagram bounds a single state update; updates never fragment.
const maxDatagram = 64 * 1024

// Receiver binds the inbound unixgram path, decodes each datagram into a
// TrackedData, records it in the registry, and hands it to the writer.
type Receiver struct {
	conn     *net.UnixConn
	path     string
	registry *Registry
	writer   UpdateWriter
}

// NewReceiver binds the receiver socket. The previous socket file is
// removed first so a monitor restart does not fail on a stale path.
func NewReceiver(path string, registry *Registry, writer UpdateWriter) (*Receiver, error) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("remove stale receiver socket %s: %w", path, err)
	}
	conn, err := net.ListenUnixgram("unixgram", &net.UnixAddr{Name: path, Net: "unixgram"})
	if err != nil {
		return nil, fmt.Errorf("bind receiver socket %s: %w", path, err)
	}
	return &Receiver{conn: conn, path: path, registry: registry, writer: writer}, nil
}

// Registry exposes the last-known-state bookkeeping.
func (r *Receiver) Registry() *Registry {
	return r.registry
}

// Run reads datagrams until ctx is done. Malformed datagrams are logged
// and skipped.
func (r *Receiver) Run(ctx context.Context) error {
	log := logging.FromContext(ctx)
	log.Info("receiver listening", "path", r.path)

	go func() {
		<-ctx.Done()
		_ = r.conn.Close()
	}()
	defer func() {
		_ = r.conn.Close()
		_ = os.Remove(r.path)
	}()

	buf := make([]byte, maxDatagram)
	for {
		n, err := r.conn.Read(buf)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				log.Info("receiver stopping")
				return nil
			}
			return fmt.Errorf("read receiver socket: %w", err)
		}

		var td state.TrackedData
		if err := json.Unmarshal(buf[:n], &td); err != nil {
			log.Error("malformed state update", "err", err)
			continue
		}
		r.registry.Apply(td)
		if r.writer != nil {
			if err := r.writer.WriteUpdate(td); err != nil {
				log.Error("write update failed", "id", td.ID, "err", err)
			}
		}
	}
}
