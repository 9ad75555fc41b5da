package domain

import (
	"reflect"
	"testing"
)

func TestClassifyCommand(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    CommandFamily
	}{
		{"plain simulator", "sim", FamilyStandard},
		{"absolute path", "/opt/sim/bin/sim", FamilyStandard},
		{"restricted suffix", "sim-restricted", FamilyRestricted},
		{"restricted in path", "/opt/sim-restricted/sim", FamilyRestricted},
		{"empty command", "", FamilyStandard},
		{"marker alone", "restricted", FamilyRestricted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyCommand(tt.command); got != tt.want {
				t.Errorf("ClassifyCommand(%q) = %v, want %v", tt.command, got, tt.want)
			}
		})
	}
}

func TestReplayCommandSpec_Build(t *testing.T) {
	tests := []struct {
		name    string
		command string
		unit    CheckpointUnit
		want    []string
	}{
		{
			name:    "standard family",
			command: "sim",
			unit:    CheckpointUnit{ID: "a", Path: "/ck/a"},
			want:    []string{"sim", "-s", "/ck/a", "--fuzzy-strace"},
		},
		{
			name:    "restricted family",
			command: "sim-restricted",
			unit:    CheckpointUnit{ID: "b", Path: "/ck/b"},
			want:    []string{"sim-restricted", "-s", "-r", "/ck/b", "--fuzzy-strace"},
		},
		{
			name:    "empty command yields minimal argv",
			command: "",
			unit:    CheckpointUnit{ID: "c", Path: "/ck/c"},
			want:    []string{"", "-s", "/ck/c", "--fuzzy-strace"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := NewReplayCommandSpec(tt.command)
			got := spec.Build(tt.unit)
			if !reflect.DeepEqual(got.Argv, tt.want) {
				t.Errorf("Build() argv = %v, want %v", got.Argv, tt.want)
			}
		})
	}
}

func TestCommandFamily_String(t *testing.T) {
	tests := []struct {
		family CommandFamily
		want   string
	}{
		{FamilyStandard, "standard"},
		{FamilyRestricted, "restricted"},
		{CommandFamily(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.family.String(); got != tt.want {
			t.Errorf("CommandFamily(%d).String() = %q, want %q", tt.family, got, tt.want)
		}
	}
}
