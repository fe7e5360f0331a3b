package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"statetrack/internal/monitor"
)

var (
	replayInput string
	replaySpeed float64
	replayColor bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a recorded state update log",
	Long:  "replay reads a JSONL log exported by watch --log-file and re-emits the updates to STDOUT with their original timing.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayInput == "" {
			return fmt.Errorf("input file required")
		}
		writer := monitor.NewStdoutWriter(replayColor)
		return monitor.ReplayLogFile(replayInput, writer, replaySpeed)
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to state update log file")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "Playback speed multiplier")
	replayCmd.Flags().BoolVar(&replayColor, "color", false, "Colorize replayed updates")
}
