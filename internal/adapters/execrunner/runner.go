// Package execrunner provides the os/exec adapter that runs replay commands
// with per-unit output capture.
package execrunner

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/perflab-io/ckptreplay/internal/domain"
	"github.com/perflab-io/ckptreplay/internal/ports"
)

// Runner implements ports.JobRunner using os/exec. Each call spawns one
// external process, redirects both output streams to the sinks, and waits
// for completion. The process is placed in its own group so cancellation
// can terminate the replay command together with any children it forked.
type Runner struct {
	logger  ports.Logger
	timeout time.Duration
}

// New creates a runner logging through the given logger. A positive timeout
// bounds each replay; a job exceeding it is killed and recorded as that
// unit's failure without affecting the rest of the batch.
func New(logger ports.Logger, timeout time.Duration) *Runner {
	return &Runner{logger: logger, timeout: timeout}
}

// Run executes the invocation for one checkpoint unit.
//
// The "Running <unit>" status line is written to the unit's err sink before
// the spawn, and "error, return code N" is appended immediately after a
// non-zero exit; both are mirrored to the operator log. A failure to spawn
// at all returns an error wrapping domain.ErrSpawnFailure and is fatal to
// this unit only.
func (r *Runner) Run(ctx context.Context, unit domain.CheckpointUnit, inv domain.Invocation, sinks ports.SinkPair) (domain.JobResult, error) {
	result := domain.JobResult{
		UnitID:     unit.ID,
		StdoutPath: sinks.StdoutPath,
		StderrPath: sinks.StderrPath,
	}

	fmt.Fprintf(sinks.Stderr, "Running %s\n", unit.ID)
	r.logger.Info("running checkpoint", ports.String("unit", unit.ID), ports.Any("argv", inv.Argv))

	cmd := exec.Command(inv.Argv[0], inv.Argv[1:]...)
	cmd.Stdout = sinks.Stdout
	cmd.Stderr = sinks.Stderr
	setProcessGroup(cmd)

	if err := cmd.Start(); err != nil {
		result.Err = fmt.Errorf("%w: %v", domain.ErrSpawnFailure, err)
		fmt.Fprintf(sinks.Stderr, "error, failed to start: %v\n", err)
		r.logger.Error("spawn failed", ports.String("unit", unit.ID), ports.Err(err))
		return result, result.Err
	}

	runCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case <-runCtx.Done():
		// Best effort: kill the whole group and leave the partially
		// written sinks in place.
		killProcessGroup(cmd)
		<-done
		if ctx.Err() != nil {
			result.Err = fmt.Errorf("%w: %v", domain.ErrContextCanceled, ctx.Err())
			r.logger.Warn("replay canceled", ports.String("unit", unit.ID))
			return result, result.Err
		}
		// Per-job timeout: a failure of this unit only.
		result.Err = fmt.Errorf("replay timed out after %s", r.timeout)
		fmt.Fprintf(sinks.Stderr, "error, timed out after %s\n", r.timeout)
		r.logger.Error("replay timed out", ports.String("unit", unit.ID), ports.Duration("timeout", r.timeout))
		return result, nil
	case waitErr := <-done:
		if waitErr != nil {
			var exitErr *exec.ExitError
			if !errors.As(waitErr, &exitErr) {
				result.Err = fmt.Errorf("%w: %v", domain.ErrSpawnFailure, waitErr)
				return result, result.Err
			}
			result.ExitCode = exitErr.ExitCode()
		}
	}

	if result.ExitCode != 0 {
		fmt.Fprintf(sinks.Stderr, "error, return code %d\n", result.ExitCode)
		r.logger.Error("replay failed",
			ports.String("unit", unit.ID),
			ports.Int("exit_code", result.ExitCode),
		)
	}
	return result, nil
}
