package ports

import (
	"context"

	"github.com/perflab-io/ckptreplay/internal/domain"
)

// JobRunner executes one replay invocation synchronously, redirecting the
// external process's stdout and stderr fully to the given sinks.
//
// The external process's lifetime is owned by the runner for the duration of
// one call; no process handle escapes it. If ctx is canceled the in-flight
// process is terminated and its partially written sinks are left in place.
type JobRunner interface {
	// Run spawns the invocation for the given unit and waits for it.
	//
	// A non-zero exit code is not an error: it is recorded in the
	// JobResult and surfaced by the coordinator. A non-nil error is
	// returned only when the process could not be launched at all
	// (wrapping domain.ErrSpawnFailure) or when ctx was canceled; either
	// way the returned JobResult is still valid for reporting.
	Run(ctx context.Context, unit domain.CheckpointUnit, inv domain.Invocation, sinks SinkPair) (domain.JobResult, error)
}
