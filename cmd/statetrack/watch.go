package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"statetrack/internal/config"
	"statetrack/internal/logging"
	"statetrack/internal/monitor"
)

var (
	watchConfigPath string
	watchSchemaPath string
	watchJSON       bool
	watchColor      bool
	watchLogFile    string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch state updates on the receiver socket",
	Long:  "watch binds the receiver socket and renders incoming state updates, tracking the last known state per reporter. Default output is a terminal dashboard.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(watchConfigPath, watchSchemaPath)
		if err != nil {
			return err
		}

		log := logging.New(rootLogLevel)
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		ctx = logging.NewContext(ctx, log)

		registry := monitor.NewRegistry()
		var writers []monitor.UpdateWriter
		var tui *monitor.TUIWriter
		switch {
		case watchJSON:
			writers = append(writers, monitor.NewStdoutWriter(false))
		case watchColor:
			writers = append(writers, monitor.NewStdoutWriter(true))
		default:
			tui = monitor.NewTUIWriter(registry)
			writers = append(writers, tui)
		}
		if watchLogFile != "" {
			fw, err := monitor.NewFileWriter(watchLogFile)
			if err != nil {
				return err
			}
			defer fw.Close()
			writers = append(writers, fw)
		}

		recv, err := monitor.NewReceiver(cfg.Tracking.ReceiverSocket, registry, monitor.NewMultiWriter(writers...))
		if err != nil {
			return err
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return recv.Run(gctx) })
		err = g.Wait()

		if tui != nil {
			_ = tui.Close()
		}
		return err
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchConfigPath, "config", "config/statetrack.yaml", "Path to configuration YAML")
	watchCmd.Flags().StringVar(&watchSchemaPath, "schema", "schemas/statetrack.cue", "Path to CUE schema file")
	watchCmd.Flags().BoolVar(&watchJSON, "json", false, "Print updates as JSON lines instead of the dashboard")
	watchCmd.Flags().BoolVar(&watchColor, "color", false, "Print updates as colorized lines instead of the dashboard")
	watchCmd.Flags().StringVar(&watchLogFile, "log-file", "", "Path to export received updates (JSONL)")
}
