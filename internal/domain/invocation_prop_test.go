package domain

import (
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genUnit generates a random checkpoint unit.
func genUnit() gopter.Gen {
	return gen.Identifier().Map(func(id string) CheckpointUnit {
		return CheckpointUnit{ID: id, Path: "/ckpts/" + id}
	})
}

// TestBuild_Idempotence checks that building an invocation is a pure
// function: identical (spec, unit) inputs always yield identical argument
// lists.
func TestBuild_Idempotence(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("same inputs yield same argv", prop.ForAll(
		func(command string, unit CheckpointUnit) bool {
			spec := NewReplayCommandSpec(command)
			first := spec.Build(unit)
			second := spec.Build(unit)
			return reflect.DeepEqual(first.Argv, second.Argv)
		},
		gen.AlphaString(),
		genUnit(),
	))

	properties.TestingRun(t)
}

// TestBuild_FamilyShape checks that the argument shape is determined by the
// restricted marker alone: any command containing it yields the restricted
// shape, all others the standard shape.
func TestBuild_FamilyShape(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("restricted marker implies -r", prop.ForAll(
		func(prefix, suffix string, unit CheckpointUnit) bool {
			command := prefix + "restricted" + suffix
			argv := NewReplayCommandSpec(command).Build(unit).Argv
			return len(argv) == 5 && argv[1] == "-s" && argv[2] == "-r" &&
				argv[3] == unit.Path && argv[4] == "--fuzzy-strace"
		},
		gen.AlphaString(),
		gen.AlphaString(),
		genUnit(),
	))

	properties.Property("no marker implies standard shape", prop.ForAll(
		func(command string, unit CheckpointUnit) bool {
			if strings.Contains(command, "restricted") {
				return true
			}
			argv := NewReplayCommandSpec(command).Build(unit).Argv
			return len(argv) == 4 && argv[1] == "-s" &&
				argv[2] == unit.Path && argv[3] == "--fuzzy-strace"
		},
		gen.AlphaString(),
		genUnit(),
	))

	properties.TestingRun(t)
}
