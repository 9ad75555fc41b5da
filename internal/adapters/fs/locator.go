// Package fs provides filesystem adapters for checkpoint discovery and
// output capture.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/perflab-io/ckptreplay/internal/domain"
)

// Locator implements ports.UnitLocator by scanning a directory for
// subdirectories that carry the checkpoint marker file.
type Locator struct {
	marker string
}

// NewLocator creates a locator that recognizes directories containing the
// given marker file. An empty marker name falls back to the default
// platform descriptor name.
func NewLocator(marker string) *Locator {
	if marker == "" {
		marker = domain.DefaultMarkerName
	}
	return &Locator{marker: marker}
}

// Locate scans root and returns one CheckpointUnit per subdirectory whose
// top level contains the marker file. Entries that are not directories or
// lack the marker are skipped without error.
func (l *Locator) Locate(ctx context.Context, root string) ([]domain.CheckpointUnit, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDirectoryUnavailable, err)
	}

	var units []domain.CheckpointUnit
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		if !l.hasMarker(dir) {
			continue
		}
		units = append(units, domain.CheckpointUnit{
			ID:   entry.Name(),
			Path: dir,
		})
	}
	return units, nil
}

// hasMarker reports whether dir contains the marker as a regular file.
func (l *Locator) hasMarker(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, l.marker))
	return err == nil && info.Mode().IsRegular()
}
