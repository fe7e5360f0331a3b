// Emitter driving synthetic reporters through the reporting pipeline
package emitter

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"statetrack/internal/config"
	"statetrack/internal/logging"
	"statetrack/internal/state"
	"statetrack/internal/tracker"
)

var errorCauses = []string{
	"disk full",
	"backend unreachable",
	"permission denied",
	"timeout waiting for upstream",
	"corrupt input record",
}

// reporter is one synthetic subsystem with its own client clone.
type reporter struct {
	client    *tracker.Client
	errorRate float64
	idleRate  float64
}

// Emitter ticks a set of synthetic reporters, each publishing Idle, Valid,
// or Error states through its own clone of the reporting client. It exists
// to exercise the full pipeline end to end.
type Emitter struct {
	reporters []reporter
	tick      time.Duration
	rand      *rand.Rand
}

// New builds reporters from the configured groups. Each reporter gets a
// clone of base renamed to a unique id within its group.
func New(base *tracker.Client, groups []config.Reporter, tick time.Duration) *Emitter {
	e := &Emitter{
		tick: tick,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, g := range groups {
		for i := 0; i < g.Count; i++ {
			c := base.Clone()
			c.Rename(generateReporterID(g.Name, i))
			e.reporters = append(e.reporters, reporter{
				client:    c,
				errorRate: g.ErrorRate,
				idleRate:  g.IdleRate,
			})
		}
	}
	return e
}

// Run reports states on every tick until ctx is done or the pipeline
// shuts down.
func (e *Emitter) Run(ctx context.Context) error {
	log := logging.FromContext(ctx)
	log.Info("emitter starting", "reporters", len(e.reporters), "tick", e.tick)
	ticker := time.NewTicker(e.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := e.step(ctx); err != nil {
				return err
			}
		case <-ctx.Done():
			log.Info("emitter stopping")
			return nil
		}
	}
}

// step publishes one state per reporter.
func (e *Emitter) step(ctx context.Context) error {
	for _, r := range e.reporters {
		if err := r.client.Report(ctx, e.pickState(r)); err != nil {
			return fmt.Errorf("emitter report: %w", err)
		}
	}
	return nil
}

func (e *Emitter) pickState(r reporter) state.State {
	roll := e.rand.Float64()
	switch {
	case roll < r.errorRate:
		return state.Error(errorCauses[e.rand.Intn(len(errorCauses))])
	case roll < r.errorRate+r.idleRate:
		return state.Idle()
	default:
		return state.Valid()
	}
}

func generateReporterID(group string, index int) string {
	// Include the index along with a UUID to guarantee uniqueness.
	return fmt.Sprintf("%s-%d-%s", group, index, uuid.New().String())
}
