package app

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/perflab-io/ckptreplay/internal/domain"
	"github.com/perflab-io/ckptreplay/internal/ports"
)

// mockLogger implements ports.Logger for testing.
type mockLogger struct{}

func (mockLogger) Debug(msg string, fields ...ports.Field) {}
func (mockLogger) Info(msg string, fields ...ports.Field)  {}
func (mockLogger) Warn(msg string, fields ...ports.Field)  {}
func (mockLogger) Error(msg string, fields ...ports.Field) {}

// mockLocator returns a fixed unit set or error.
type mockLocator struct {
	mu    sync.Mutex
	units []domain.CheckpointUnit
	err   error
	scans int
}

func (m *mockLocator) Locate(ctx context.Context, root string) ([]domain.CheckpointUnit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scans++
	if m.err != nil {
		return nil, m.err
	}
	return append([]domain.CheckpointUnit{}, m.units...), nil
}

func (m *mockLocator) setUnits(units []domain.CheckpointUnit) {
	m.mu.Lock()
	m.units = units
	m.mu.Unlock()
}

// nopWriteCloser is an in-memory sink.
type nopWriteCloser struct{}

func (nopWriteCloser) Write(p []byte) (int, error) { return len(p), nil }
func (nopWriteCloser) Close() error                { return nil }

// mockSinkFactory hands out in-memory sinks, optionally failing for one unit.
type mockSinkFactory struct {
	failFor string
}

func (m *mockSinkFactory) Create(unitID string) (ports.SinkPair, error) {
	if m.failFor != "" && unitID == m.failFor {
		return ports.SinkPair{}, errors.New("disk full")
	}
	return ports.SinkPair{
		Stdout:     nopWriteCloser{},
		Stderr:     nopWriteCloser{},
		StdoutPath: unitID + ".out",
		StderrPath: unitID + ".err",
	}, nil
}

// mockRunner returns canned exit codes per unit and records invocations.
type mockRunner struct {
	mu        sync.Mutex
	exitCodes map[string]int
	spawnErr  map[string]bool
	ran       []string
	argvs     map[string][]string
}

func newMockRunner() *mockRunner {
	return &mockRunner{
		exitCodes: make(map[string]int),
		spawnErr:  make(map[string]bool),
		argvs:     make(map[string][]string),
	}
}

func (m *mockRunner) Run(ctx context.Context, unit domain.CheckpointUnit, inv domain.Invocation, sinks ports.SinkPair) (domain.JobResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ran = append(m.ran, unit.ID)
	m.argvs[unit.ID] = inv.Argv

	result := domain.JobResult{
		UnitID:     unit.ID,
		StdoutPath: sinks.StdoutPath,
		StderrPath: sinks.StderrPath,
	}
	if m.spawnErr[unit.ID] {
		result.Err = fmt.Errorf("%w: no such file", domain.ErrSpawnFailure)
		return result, result.Err
	}
	result.ExitCode = m.exitCodes[unit.ID]
	return result, nil
}

func (m *mockRunner) ranUnits() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.ran...)
}

func units(ids ...string) []domain.CheckpointUnit {
	out := make([]domain.CheckpointUnit, len(ids))
	for i, id := range ids {
		out[i] = domain.CheckpointUnit{ID: id, Path: "/ck/" + id}
	}
	return out
}

func TestCoordinator_Run_AllPass(t *testing.T) {
	runner := newMockRunner()
	c := NewCoordinator(&mockLocator{units: units("a", "b")}, runner, &mockSinkFactory{}, mockLogger{}, 1)

	report, err := c.Run(context.Background(), "/ckpts", domain.NewReplayCommandSpec("sim"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Attempted() != 2 {
		t.Errorf("Attempted() = %d, want 2", report.Attempted())
	}
	if !report.Succeeded() {
		t.Errorf("batch failed: %v", report.FailedUnits())
	}
	if c.State() != StateDone {
		t.Errorf("State() = %v, want Done", c.State())
	}
}

func TestCoordinator_Run_PartialFailureIsolation(t *testing.T) {
	runner := newMockRunner()
	runner.exitCodes["b"] = 3
	c := NewCoordinator(&mockLocator{units: units("a", "b", "c")}, runner, &mockSinkFactory{}, mockLogger{}, 1)

	report, err := c.Run(context.Background(), "/ckpts", domain.NewReplayCommandSpec("sim"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// The failing unit never prevents the ones after it from running.
	if got, want := runner.ranUnits(), []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ran units = %v, want %v", got, want)
	}
	if got, want := report.FailedUnits(), []string{"b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("FailedUnits() = %v, want %v", got, want)
	}
}

func TestCoordinator_Run_SpawnFailureIsolation(t *testing.T) {
	runner := newMockRunner()
	runner.spawnErr["a"] = true
	c := NewCoordinator(&mockLocator{units: units("a", "b")}, runner, &mockSinkFactory{}, mockLogger{}, 1)

	report, err := c.Run(context.Background(), "/ckpts", domain.NewReplayCommandSpec("sim"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got, want := report.FailedUnits(), []string{"a"}; !reflect.DeepEqual(got, want) {
		t.Errorf("FailedUnits() = %v, want %v", got, want)
	}
	if report.Attempted() != 2 {
		t.Errorf("Attempted() = %d, want 2", report.Attempted())
	}
}

func TestCoordinator_Run_EmptyScan(t *testing.T) {
	c := NewCoordinator(&mockLocator{}, newMockRunner(), &mockSinkFactory{}, mockLogger{}, 1)

	report, err := c.Run(context.Background(), "/ckpts", domain.NewReplayCommandSpec("sim"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Attempted() != 0 || !report.Succeeded() {
		t.Errorf("empty scan: attempted=%d succeeded=%v, want 0/true",
			report.Attempted(), report.Succeeded())
	}
}

func TestCoordinator_Run_ScanFailureAborts(t *testing.T) {
	runner := newMockRunner()
	loc := &mockLocator{err: fmt.Errorf("%w: permission denied", domain.ErrDirectoryUnavailable)}
	c := NewCoordinator(loc, runner, &mockSinkFactory{}, mockLogger{}, 1)

	_, err := c.Run(context.Background(), "/ckpts", domain.NewReplayCommandSpec("sim"))
	if !errors.Is(err, domain.ErrDirectoryUnavailable) {
		t.Fatalf("Run() error = %v, want ErrDirectoryUnavailable", err)
	}
	if len(runner.ranUnits()) != 0 {
		t.Error("jobs ran despite scan failure")
	}
	if c.State() != StateAborted {
		t.Errorf("State() = %v, want Aborted", c.State())
	}
}

func TestCoordinator_Run_SinkFailureIsolation(t *testing.T) {
	runner := newMockRunner()
	c := NewCoordinator(&mockLocator{units: units("a", "b")}, runner, &mockSinkFactory{failFor: "a"}, mockLogger{}, 1)

	report, err := c.Run(context.Background(), "/ckpts", domain.NewReplayCommandSpec("sim"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got, want := report.FailedUnits(), []string{"a"}; !reflect.DeepEqual(got, want) {
		t.Errorf("FailedUnits() = %v, want %v", got, want)
	}
	// Unit b still ran with its own sinks.
	if got, want := runner.ranUnits(), []string{"b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ran units = %v, want %v", got, want)
	}
}

func TestCoordinator_Run_RestrictedFamilyArgv(t *testing.T) {
	runner := newMockRunner()
	c := NewCoordinator(&mockLocator{units: units("b")}, runner, &mockSinkFactory{}, mockLogger{}, 1)

	if _, err := c.Run(context.Background(), "/ckpts", domain.NewReplayCommandSpec("sim-restricted")); err != nil {
		t.Fatal(err)
	}
	want := []string{"sim-restricted", "-s", "-r", "/ck/b", "--fuzzy-strace"}
	if got := runner.argvs["b"]; !reflect.DeepEqual(got, want) {
		t.Errorf("argv = %v, want %v", got, want)
	}
}

func TestCoordinator_Run_BoundedPool(t *testing.T) {
	runner := newMockRunner()
	runner.exitCodes["c"] = 1
	c := NewCoordinator(&mockLocator{units: units("a", "b", "c", "d", "e")}, runner, &mockSinkFactory{}, mockLogger{}, 3)

	report, err := c.Run(context.Background(), "/ckpts", domain.NewReplayCommandSpec("sim"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Attempted() != 5 {
		t.Errorf("Attempted() = %d, want 5", report.Attempted())
	}
	if got, want := report.FailedUnits(), []string{"c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("FailedUnits() = %v, want %v", got, want)
	}
	// Every unit dispatched exactly once, in any order.
	ran := runner.ranUnits()
	counts := make(map[string]int)
	for _, id := range ran {
		counts[id]++
	}
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		if counts[id] != 1 {
			t.Errorf("unit %q ran %d times, want 1", id, counts[id])
		}
	}
}

func TestCoordinator_Run_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewCoordinator(&mockLocator{units: units("a", "b")}, newMockRunner(), &mockSinkFactory{}, mockLogger{}, 1)
	_, err := c.Run(ctx, "/ckpts", domain.NewReplayCommandSpec("sim"))
	if !errors.Is(err, domain.ErrContextCanceled) {
		t.Fatalf("Run() error = %v, want ErrContextCanceled", err)
	}
	if c.State() != StateAborted {
		t.Errorf("State() = %v, want Aborted", c.State())
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateIdle, "Idle"},
		{StateScanning, "Scanning"},
		{StateRunning, "Running"},
		{StateDone, "Done"},
		{StateAborted, "Aborted"},
		{State(42), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
