package monitor

import "statetrack/internal/state"

// UpdateWriter is an interface to support different output writers.
type UpdateWriter interface {
	WriteUpdate(state.TrackedData) error
}

// Optional: writers may support batch mode.
type batchUpdateWriter interface {
	WriteUpdates([]state.TrackedData) error
}
