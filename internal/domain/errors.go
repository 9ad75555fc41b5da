package domain

import "errors"

// Domain errors represent error conditions in the ckptreplay domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrDirectoryUnavailable is returned when the checkpoint root is
	// missing or unreadable. It is fatal to the whole batch: no jobs run.
	ErrDirectoryUnavailable = errors.New("ckptreplay: checkpoint directory unavailable")

	// ErrSpawnFailure is returned when the replay command could not be
	// launched for a unit. It is fatal to that unit only.
	ErrSpawnFailure = errors.New("ckptreplay: failed to spawn replay command")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("ckptreplay: invalid configuration")

	// ErrContextCanceled is returned when the batch is canceled before
	// every unit has been processed.
	ErrContextCanceled = errors.New("ckptreplay: context canceled")
)
