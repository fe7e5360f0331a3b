package monitor

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"statetrack/internal/state"
)

func TestStdoutWriterJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	w := &StdoutWriter{out: buf}
	td := state.New("ingest", state.Valid(), time.Unix(0, 0).UTC())
	if err := w.WriteUpdate(td); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	out := strings.TrimSpace(buf.String())
	if !strings.HasPrefix(out, "{") || !strings.Contains(out, `"tag":"Valid"`) {
		t.Fatalf("expected JSON output, got %q", out)
	}
}

func TestStdoutWriterColorized(t *testing.T) {
	buf := &bytes.Buffer{}
	w := &StdoutWriter{out: buf, colorize: true}
	td := state.New("ingest", state.Error("disk full"), time.Unix(0, 0).UTC())
	if err := w.WriteUpdate(td); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "\x1b[") {
		t.Fatalf("expected color codes in output: %q", out)
	}
	if !strings.Contains(out, "disk full") {
		t.Fatalf("error message missing: %q", out)
	}
}

func TestMultiWriterFansOut(t *testing.T) {
	a, b := &collectWriter{}, &collectWriter{}
	mw := NewMultiWriter(a, b)
	if err := mw.WriteUpdate(state.Capture("x", state.Idle())); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if len(a.updates()) != 1 || len(b.updates()) != 1 {
		t.Fatal("update not fanned out to all writers")
	}
}
