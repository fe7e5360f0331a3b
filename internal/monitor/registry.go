package monitor

import (
	"sort"
	"sync"

	"statetrack/internal/state"
)

// Registry keeps the last known update per reporter id. The pipeline gives
// no delivery guarantees, so consumers track current state themselves;
// this is that bookkeeping.
type Registry struct {
	mu      sync.Mutex
	entries map[string]state.TrackedData
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]state.TrackedData)}
}

// Apply records td as the latest state for its id. Stale datagrams, with a
// timestamp older than what is already recorded, are ignored.
func (r *Registry) Apply(td state.TrackedData) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.entries[td.ID]; ok && td.Timestamp.Before(prev.Timestamp) {
		return
	}
	r.entries[td.ID] = td
}

// Get returns the last known update for id.
func (r *Registry) Get(id string) (state.TrackedData, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	td, ok := r.entries[id]
	return td, ok
}

// Snapshot returns all last known updates ordered by id.
func (r *Registry) Snapshot() []state.TrackedData {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]state.TrackedData, 0, len(r.entries))
	for _, td := range r.entries {
		out = append(out, td)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Errors returns the ids currently in an error state, ordered by id.
func (r *Registry) Errors() []state.TrackedData {
	var out []state.TrackedData
	for _, td := range r.Snapshot() {
		if td.State.IsError() {
			out = append(out, td)
		}
	}
	return out
}
