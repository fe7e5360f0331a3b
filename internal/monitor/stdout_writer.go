// Writer implementations printing state updates to STDOUT
package monitor

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"statetrack/internal/state"
)

const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
	colorBlue   = "\x1b[34m"
	colorGray   = "\x1b[90m"
)

// StdoutWriter prints one state update per line. With colorize set it
// renders a human-friendly ANSI line, otherwise plain JSON.
type StdoutWriter struct {
	out      io.Writer
	colorize bool
}

// NewStdoutWriter creates a StdoutWriter writing to os.Stdout.
func NewStdoutWriter(colorize bool) *StdoutWriter {
	return &StdoutWriter{out: os.Stdout, colorize: colorize}
}

// WriteUpdate outputs a single state update.
func (w *StdoutWriter) WriteUpdate(td state.TrackedData) error {
	if !w.colorize {
		data, err := json.Marshal(td)
		if err != nil {
			return err
		}
		fmt.Fprintln(w.out, string(data))
		return nil
	}

	stateColor := colorGreen
	switch {
	case td.State.IsError():
		stateColor = colorRed
	case td.State.Tag() == state.TagIdle:
		stateColor = colorYellow
	}
	line := fmt.Sprintf("%s[%s]%s %sid=%s%s %sstate=%s%s",
		colorGray, td.Timestamp.Format(time.RFC3339), colorReset,
		colorBlue, td.ID, colorReset,
		stateColor, td.State.Tag(), colorReset,
	)
	if td.State.IsError() {
		line += fmt.Sprintf(" %smessage=%q%s", colorRed, td.State.Message(), colorReset)
	}
	fmt.Fprintln(w.out, line)
	return nil
}

// WriteUpdates outputs multiple state updates.
func (w *StdoutWriter) WriteUpdates(tds []state.TrackedData) error {
	for _, td := range tds {
		if err := w.WriteUpdate(td); err != nil {
			return err
		}
	}
	return nil
}
