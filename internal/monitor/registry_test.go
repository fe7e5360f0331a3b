package monitor

import (
	"testing"
	"time"

	"statetrack/internal/state"
)

func TestRegistryTracksLastState(t *testing.T) {
	r := NewRegistry()
	base := time.Date(2025, 4, 12, 9, 0, 0, 0, time.UTC)

	r.Apply(state.New("ingest", state.Idle(), base))
	r.Apply(state.New("ingest", state.Error("disk full"), base.Add(time.Second)))
	r.Apply(state.New("api", state.Valid(), base))

	td, ok := r.Get("ingest")
	if !ok {
		t.Fatal("ingest not tracked")
	}
	if td.State != state.Error("disk full") {
		t.Errorf("last state = %v", td.State)
	}

	snap := r.Snapshot()
	if len(snap) != 2 || snap[0].ID != "api" || snap[1].ID != "ingest" {
		t.Errorf("snapshot not ordered by id: %+v", snap)
	}
}

func TestRegistryIgnoresStaleUpdates(t *testing.T) {
	r := NewRegistry()
	base := time.Date(2025, 4, 12, 9, 0, 0, 0, time.UTC)

	r.Apply(state.New("ingest", state.Valid(), base.Add(time.Minute)))
	r.Apply(state.New("ingest", state.Error("old news"), base))

	td, _ := r.Get("ingest")
	if td.State != state.Valid() {
		t.Errorf("stale update applied: %v", td.State)
	}
}

func TestRegistryErrors(t *testing.T) {
	r := NewRegistry()
	now := time.Now().UTC()
	r.Apply(state.New("a", state.Valid(), now))
	r.Apply(state.New("b", state.Error("boom"), now))
	r.Apply(state.New("c", state.Error("bang"), now))

	errs := r.Errors()
	if len(errs) != 2 || errs[0].ID != "b" || errs[1].ID != "c" {
		t.Errorf("unexpected error set: %+v", errs)
	}
}
