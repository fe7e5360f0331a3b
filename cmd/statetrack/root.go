package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootLogLevel string

var rootCmd = &cobra.Command{
	Use:   "statetrack",
	Short: "State reporting toolkit",
	Long:  "statetrack collects operational state updates from process subsystems and republishes them over a local datagram socket.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(replayCmd)
}
