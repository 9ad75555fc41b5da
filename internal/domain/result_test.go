package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestJobResult_Failed(t *testing.T) {
	tests := []struct {
		name   string
		result JobResult
		want   bool
	}{
		{"clean exit", JobResult{UnitID: "a", ExitCode: 0}, false},
		{"non-zero exit", JobResult{UnitID: "a", ExitCode: 3}, true},
		{"spawn failure", JobResult{UnitID: "a", Err: ErrSpawnFailure}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.Failed(); got != tt.want {
				t.Errorf("Failed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBatchReport_Empty(t *testing.T) {
	report := NewBatchReport()

	if report.Attempted() != 0 {
		t.Errorf("Attempted() = %d, want 0", report.Attempted())
	}
	if !report.Succeeded() {
		t.Error("empty report should be successful")
	}
	if got := report.FailedUnits(); len(got) != 0 {
		t.Errorf("FailedUnits() = %v, want empty", got)
	}
}

func TestBatchReport_PartialFailure(t *testing.T) {
	report := NewBatchReport()
	report.Add(JobResult{UnitID: "ckpt1", ExitCode: 0})
	report.Add(JobResult{UnitID: "ckpt2", ExitCode: 3})

	if report.Attempted() != 2 {
		t.Errorf("Attempted() = %d, want 2", report.Attempted())
	}
	if report.FailedCount() != 1 {
		t.Errorf("FailedCount() = %d, want 1", report.FailedCount())
	}
	if report.Succeeded() {
		t.Error("report with a failure should not be successful")
	}
	if got, want := report.FailedUnits(), []string{"ckpt2"}; !reflect.DeepEqual(got, want) {
		t.Errorf("FailedUnits() = %v, want %v", got, want)
	}
}

func TestBatchReport_FailedUnitsSorted(t *testing.T) {
	report := NewBatchReport()
	report.Add(JobResult{UnitID: "zeta", ExitCode: 1})
	report.Add(JobResult{UnitID: "alpha", Err: errors.New("spawn: no such file")})
	report.Add(JobResult{UnitID: "mid", ExitCode: 2})

	want := []string{"alpha", "mid", "zeta"}
	if got := report.FailedUnits(); !reflect.DeepEqual(got, want) {
		t.Errorf("FailedUnits() = %v, want %v", got, want)
	}
}
