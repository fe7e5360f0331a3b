package emitter

import (
	"context"
	"encoding/json"
	"net"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"statetrack/internal/config"
	"statetrack/internal/state"
	"statetrack/internal/tracker"
)

func buildPipeline(t *testing.T) (*tracker.Client, *net.UnixConn) {
	t.Helper()
	dir := t.TempDir()
	receiverPath := filepath.Join(dir, "in.sock")
	recv, err := net.ListenUnixgram("unixgram", &net.UnixAddr{Name: receiverPath, Net: "unixgram"})
	if err != nil {
		t.Fatalf("bind receiver: %v", err)
	}
	t.Cleanup(func() { recv.Close() })

	cfg := config.Tracking{
		SenderSocket:          filepath.Join(dir, "out.sock"),
		ReceiverSocket:        receiverPath,
		UpdateIntervalSeconds: 0,
	}
	client, err := tracker.Build(context.Background(), cfg, 64)
	if err != nil {
		t.Fatalf("build pipeline: %v", err)
	}
	t.Cleanup(client.Close)
	return client, recv
}

func TestEmitterPublishesPerReporter(t *testing.T) {
	client, recv := buildPipeline(t)

	groups := []config.Reporter{
		{Name: "ingest", Count: 2, ErrorRate: 1}, // always errors, never suppressed
	}
	e := New(client, groups, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = e.Run(ctx) }()

	seen := map[string]bool{}
	buf := make([]byte, 64*1024)
	deadline := time.Now().Add(3 * time.Second)
	for len(seen) < 2 && time.Now().Before(deadline) {
		recv.SetReadDeadline(deadline)
		n, err := recv.Read(buf)
		if err != nil {
			t.Fatalf("read datagram: %v", err)
		}
		var td state.TrackedData
		if err := json.Unmarshal(buf[:n], &td); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.HasPrefix(td.ID, "ingest-") {
			t.Fatalf("unexpected reporter id %q", td.ID)
		}
		if !td.State.IsError() {
			t.Fatalf("error_rate 1 must always produce errors, got %v", td.State)
		}
		seen[td.ID] = true
	}
	if len(seen) != 2 {
		t.Fatalf("expected updates from 2 distinct reporters, got %d", len(seen))
	}
}

func TestEmitterStateDistribution(t *testing.T) {
	client, _ := buildPipeline(t)
	e := New(client, []config.Reporter{{Name: "x", Count: 1}}, time.Second)

	always := reporter{errorRate: 0, idleRate: 0}
	for i := 0; i < 100; i++ {
		if st := e.pickState(always); st != state.Valid() {
			t.Fatalf("zero rates must yield Valid, got %v", st)
		}
	}
	idleOnly := reporter{errorRate: 0, idleRate: 1}
	for i := 0; i < 100; i++ {
		if st := e.pickState(idleOnly); st != state.Idle() {
			t.Fatalf("idle_rate 1 must yield Idle, got %v", st)
		}
	}
}
