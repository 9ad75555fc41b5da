package ports

import (
	"context"

	"github.com/perflab-io/ckptreplay/internal/domain"
)

// UnitLocator discovers checkpoint units under a root directory.
// Implementations scan the filesystem (or other storage) for directories
// carrying the checkpoint marker file.
type UnitLocator interface {
	// Locate scans root and returns the discovered checkpoint units in
	// the storage's natural listing order. Re-scanning the same root
	// yields the same set absent filesystem changes.
	//
	// Entries without the marker file are skipped silently; their absence
	// is a normal "not a checkpoint" signal, not a failure. An unreadable
	// root returns an error wrapping domain.ErrDirectoryUnavailable.
	Locate(ctx context.Context, root string) ([]domain.CheckpointUnit, error)
}
