package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"statetrack/internal/config"
	"statetrack/internal/emitter"
	"statetrack/internal/logging"
	"statetrack/internal/tracker"
)

var (
	runConfigPath string
	runSchemaPath string
	runTick       time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the reporting pipeline with synthetic reporters",
	Long:  "run builds the tracker pipeline and drives the configured reporter groups through it, emitting state update datagrams to the receiver socket.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(runConfigPath, runSchemaPath)
		if err != nil {
			return err
		}

		log := logging.New(rootLogLevel)
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		ctx = logging.NewContext(ctx, log)

		// The tracker gets its own context so a shutdown signal stops the
		// producers first and the queue still drains.
		trackerCtx := logging.NewContext(context.Background(), log)
		client, err := tracker.Build(trackerCtx, cfg.Tracking, cfg.Tracking.QueueCapacity)
		if err != nil {
			return err
		}

		em := emitter.New(client, cfg.Reporters, runTick)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return em.Run(gctx) })
		err = g.Wait()

		client.Close()
		select {
		case <-client.Done():
		case <-time.After(5 * time.Second):
			log.Warn("tracker did not drain in time")
		}
		log.Info("statetrack stopped")
		return err
	},
}

func init() {
	runCmd.Flags().StringVar(&runConfigPath, "config", "config/statetrack.yaml", "Path to configuration YAML")
	runCmd.Flags().StringVar(&runSchemaPath, "schema", "schemas/statetrack.cue", "Path to CUE schema file")
	runCmd.Flags().DurationVar(&runTick, "tick", time.Second, "Reporter tick interval (e.g. 500ms, 2s)")
}
