package domain

import "strings"

// CommandFamily identifies the argument-syntax variant of the replay command.
// The two families are not unifiable into one flag set; the family is
// selected deterministically from the base command string alone.
type CommandFamily int

const (
	// FamilyStandard is the default replay command syntax.
	FamilyStandard CommandFamily = iota

	// FamilyRestricted is the restricted-execution command syntax, which
	// requires the additional -r flag.
	FamilyRestricted
)

// String returns a human-readable representation of the family.
func (f CommandFamily) String() string {
	switch f {
	case FamilyStandard:
		return "standard"
	case FamilyRestricted:
		return "restricted"
	default:
		return "unknown"
	}
}

// restrictedMarker is the substring of the base command string that signals
// the restricted-execution command family.
const restrictedMarker = "restricted"

// Replay command flags.
const (
	flagSilent      = "-s"
	flagRestricted  = "-r"
	flagFuzzyStrace = "--fuzzy-strace"
)

// ClassifyCommand determines the command family from the base command string.
// This is the only place that inspects the raw command text.
func ClassifyCommand(command string) CommandFamily {
	if strings.Contains(command, restrictedMarker) {
		return FamilyRestricted
	}
	return FamilyStandard
}

// ReplayCommandSpec describes how to invoke the external replay command.
// It is constructed once per batch run and is immutable.
type ReplayCommandSpec struct {
	// Command is the operator-supplied base command. It is opaque except
	// for family classification.
	Command string

	// Family is the command family derived from Command.
	Family CommandFamily
}

// NewReplayCommandSpec builds a spec for the given base command string,
// classifying its command family.
func NewReplayCommandSpec(command string) ReplayCommandSpec {
	return ReplayCommandSpec{
		Command: command,
		Family:  ClassifyCommand(command),
	}
}

// Invocation is the concrete argument list for replaying one checkpoint
// unit. Argv[0] is the command to execute. Invocations are ephemeral and
// recomputed per unit, never stored.
type Invocation struct {
	Argv []string
}

// Build constructs the invocation for one checkpoint unit. It is a pure
// function: the same spec and unit always produce the same argument list.
//
// Family standard:   <cmd> -s <unit-path> --fuzzy-strace
// Family restricted: <cmd> -s -r <unit-path> --fuzzy-strace
//
// An empty base command still yields the minimal argument list; the spawn
// failure surfaces downstream in the job runner.
func (s ReplayCommandSpec) Build(unit CheckpointUnit) Invocation {
	argv := make([]string, 0, 5)
	argv = append(argv, s.Command, flagSilent)
	if s.Family == FamilyRestricted {
		argv = append(argv, flagRestricted)
	}
	argv = append(argv, unit.Path, flagFuzzyStrace)
	return Invocation{Argv: argv}
}
