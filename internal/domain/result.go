package domain

import "sort"

// JobResult is the outcome of running one invocation. It is produced by the
// job runner and consumed immediately by the batch coordinator.
type JobResult struct {
	// UnitID identifies the checkpoint unit this result belongs to.
	UnitID string

	// ExitCode is the replay command's exit status. It is data, not an
	// error: a non-zero value is surfaced by the coordinator, never
	// escalated by the runner.
	ExitCode int

	// StdoutPath and StderrPath locate the captured output streams.
	StdoutPath string
	StderrPath string

	// Err is set when the job failed before producing an exit code, such
	// as a spawn failure. A unit with Err set counts as failed.
	Err error
}

// Failed reports whether this job counts as a failure in the batch report.
func (r JobResult) Failed() bool {
	return r.Err != nil || r.ExitCode != 0
}

// BatchReport aggregates the outcomes of all jobs in one batch run. It is
// built incrementally as jobs complete and finalized once every discovered
// unit has been processed. The failed set is order-independent.
type BatchReport struct {
	attempted int
	failed    map[string]struct{}
}

// NewBatchReport creates an empty report.
func NewBatchReport() *BatchReport {
	return &BatchReport{failed: make(map[string]struct{})}
}

// Add records one job result.
func (b *BatchReport) Add(result JobResult) {
	b.attempted++
	if result.Failed() {
		b.failed[result.UnitID] = struct{}{}
	}
}

// Attempted returns the number of units processed.
func (b *BatchReport) Attempted() int {
	return b.attempted
}

// FailedCount returns the number of units whose replay failed.
func (b *BatchReport) FailedCount() int {
	return len(b.failed)
}

// FailedUnits returns the identifiers of failing units in sorted order.
func (b *BatchReport) FailedUnits() []string {
	ids := make([]string, 0, len(b.failed))
	for id := range b.failed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Succeeded reports whether the whole batch succeeded. An empty batch is
// successful: finding no checkpoints is not an error.
func (b *BatchReport) Succeeded() bool {
	return len(b.failed) == 0
}
