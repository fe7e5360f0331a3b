package monitor

import "statetrack/internal/state"

// MultiWriter fans state updates out to multiple writers.
type MultiWriter struct {
	writers []UpdateWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(writers ...UpdateWriter) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// WriteUpdate sends a state update to all writers.
func (mw *MultiWriter) WriteUpdate(td state.TrackedData) error {
	for _, w := range mw.writers {
		if err := w.WriteUpdate(td); err != nil {
			return err
		}
	}
	return nil
}

// WriteUpdates sends multiple updates to all writers, using batch mode
// where supported.
func (mw *MultiWriter) WriteUpdates(tds []state.TrackedData) error {
	for _, w := range mw.writers {
		if bw, ok := w.(batchUpdateWriter); ok {
			if err := bw.WriteUpdates(tds); err != nil {
				return err
			}
			continue
		}
		for _, td := range tds {
			if err := w.WriteUpdate(td); err != nil {
				return err
			}
		}
	}
	return nil
}
