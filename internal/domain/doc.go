// Package domain contains the core domain entities and value objects for
// ckptreplay.
//
// This package represents the innermost layer of the Clean Architecture. It
// has no dependencies on infrastructure concerns (process execution, file
// system, logging) and contains only pure business logic.
//
// # Entities
//
//   - [CheckpointUnit]: A saved execution state discovered under the
//     checkpoint root, identified by its directory name
//   - [ReplayCommandSpec]: How to invoke the external replay command,
//     including its command family
//   - [Invocation]: The concrete argument list for replaying one unit
//   - [JobResult]: The outcome of one replay job
//   - [BatchReport]: The aggregate outcome of a whole batch
//
// # Design Principles
//
// Domain entities are:
//   - Immutable after construction (where practical)
//   - Free of infrastructure dependencies
//   - Focused on business rules and invariants
//   - Testable without mocks or external systems
package domain
