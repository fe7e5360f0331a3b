package monitor

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"statetrack/internal/state"
)

// ReplayLog replays recorded state updates from r to writer. A speed >0
// reproduces the original inter-message timing, scaled; speed <= 0 inserts
// no artificial delay.
func ReplayLog(r io.Reader, writer UpdateWriter, speed float64) error {
	dec := json.NewDecoder(r)
	var prev time.Time
	for {
		var td state.TrackedData
		if err := dec.Decode(&td); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if !prev.IsZero() && speed > 0 {
			diff := td.Timestamp.Sub(prev)
			if speed != 1 {
				diff = time.Duration(float64(diff) / speed)
			}
			if diff > 0 {
				time.Sleep(diff)
			}
		}
		if err := writer.WriteUpdate(td); err != nil {
			return err
		}
		prev = td.Timestamp
	}
}

// ReplayLogFile opens a JSONL log and replays its updates.
func ReplayLogFile(path string, writer UpdateWriter, speed float64) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ReplayLog(f, writer, speed)
}
