// Package app contains the application layer: the batch coordinator that
// drives the locator, invocation builder, and job runner over all discovered
// checkpoint units.
package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/perflab-io/ckptreplay/internal/domain"
	"github.com/perflab-io/ckptreplay/internal/ports"
)

// Coordinator orchestrates one batch: Idle -> Scanning -> Running -> Done.
// There are no retries; a unit that fails is recorded and the coordinator
// proceeds to the next unit. One unit's failure never halts the batch.
type Coordinator struct {
	locator ports.UnitLocator
	runner  ports.JobRunner
	sinks   ports.SinkFactory
	logger  ports.Logger
	jobs    int

	mu    sync.Mutex
	state State
}

// NewCoordinator creates a coordinator running up to jobs replays at a time.
// Units are fully independent, so a bounded pool is safe; jobs below 1 means
// the original strictly sequential behavior.
func NewCoordinator(
	locator ports.UnitLocator,
	runner ports.JobRunner,
	sinks ports.SinkFactory,
	logger ports.Logger,
	jobs int,
) *Coordinator {
	if jobs < 1 {
		jobs = 1
	}
	return &Coordinator{
		locator: locator,
		runner:  runner,
		sinks:   sinks,
		logger:  logger,
		jobs:    jobs,
		state:   StateIdle,
	}
}

// State returns the current lifecycle state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Coordinator) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Run executes the full batch for the given root and command spec.
//
// The returned error is non-nil only when the scan itself failed (wrapping
// domain.ErrDirectoryUnavailable) or when the batch was canceled; per-unit
// failures are recorded in the report instead. A scan that finds no
// checkpoints yields an empty, successful report.
func (c *Coordinator) Run(ctx context.Context, root string, spec domain.ReplayCommandSpec) (*domain.BatchReport, error) {
	c.setState(StateScanning)
	units, err := c.locator.Locate(ctx, root)
	if err != nil {
		c.setState(StateAborted)
		return nil, err
	}
	c.logger.Info("scan complete",
		ports.String("root", root),
		ports.Int("units", len(units)),
		ports.String("family", spec.Family.String()),
	)

	c.setState(StateRunning)
	report := domain.NewBatchReport()
	if err := c.process(ctx, spec, units, report); err != nil {
		c.setState(StateAborted)
		return report, err
	}

	c.setState(StateDone)
	c.logger.Info("batch complete",
		ports.Int("attempted", report.Attempted()),
		ports.Int("failed", report.FailedCount()),
	)
	return report, nil
}

// process feeds every unit through a bounded worker pool. Each unit is
// dispatched exactly once; dispatch stops when ctx is canceled, and workers
// drain in-flight jobs before returning.
func (c *Coordinator) process(ctx context.Context, spec domain.ReplayCommandSpec, units []domain.CheckpointUnit, report *domain.BatchReport) error {
	unitCh := make(chan domain.CheckpointUnit)
	var wg sync.WaitGroup
	for i := 0; i < c.jobs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for unit := range unitCh {
				c.record(report, c.runUnit(ctx, spec, unit))
			}
		}()
	}

	var canceled bool
dispatch:
	for _, unit := range units {
		if ctx.Err() != nil {
			canceled = true
			break
		}
		select {
		case <-ctx.Done():
			canceled = true
			break dispatch
		case unitCh <- unit:
		}
	}
	close(unitCh)
	wg.Wait()

	if canceled {
		return fmt.Errorf("%w: %v", domain.ErrContextCanceled, ctx.Err())
	}
	return nil
}

// runUnit runs one checkpoint through its own sink pair. All failure modes
// end up as data in the returned JobResult; nothing escalates to the batch.
func (c *Coordinator) runUnit(ctx context.Context, spec domain.ReplayCommandSpec, unit domain.CheckpointUnit) domain.JobResult {
	sinks, err := c.sinks.Create(unit.ID)
	if err != nil {
		c.logger.Error("sink creation failed", ports.String("unit", unit.ID), ports.Err(err))
		return domain.JobResult{UnitID: unit.ID, Err: fmt.Errorf("create sinks: %w", err)}
	}
	defer sinks.Close()

	result, _ := c.runner.Run(ctx, unit, spec.Build(unit), sinks)
	return result
}

// record adds a result to the report under the coordinator lock, so workers
// never race on the aggregate.
func (c *Coordinator) record(report *domain.BatchReport, result domain.JobResult) {
	c.mu.Lock()
	report.Add(result)
	c.mu.Unlock()
}
