package monitor

import (
	"encoding/json"
	"os"

	"statetrack/internal/state"
)

// FileWriter appends state updates to a JSONL file, suitable for replay.
type FileWriter struct {
	file *os.File
	enc  *json.Encoder
}

// NewFileWriter creates or truncates the log file at path.
func NewFileWriter(path string) (*FileWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &FileWriter{file: f, enc: json.NewEncoder(f)}, nil
}

// WriteUpdate logs a single state update.
func (f *FileWriter) WriteUpdate(td state.TrackedData) error {
	return f.enc.Encode(td)
}

// WriteUpdates logs multiple state updates.
func (f *FileWriter) WriteUpdates(tds []state.TrackedData) error {
	for _, td := range tds {
		if err := f.WriteUpdate(td); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying file.
func (f *FileWriter) Close() error {
	return f.file.Close()
}
