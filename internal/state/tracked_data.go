package state

import "time"

// TrackedData pairs a reporter identity with a state and the moment it was
// captured. Constructed when a reporter publishes, immutable afterwards,
// and consumed exactly once by the tracker.
type TrackedData struct {
	ID        string    `json:"id"`
	State     State     `json:"state"`
	Timestamp time.Time `json:"timestamp"`
}

// New builds a TrackedData with an explicit capture time.
func New(id string, st State, ts time.Time) TrackedData {
	return TrackedData{ID: id, State: st, Timestamp: ts}
}

// Capture builds a TrackedData stamped with the current time.
func Capture(id string, st State) TrackedData {
	return New(id, st, time.Now().UTC())
}
