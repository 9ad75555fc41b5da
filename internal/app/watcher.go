package app

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/perflab-io/ckptreplay/internal/domain"
	"github.com/perflab-io/ckptreplay/internal/ports"
)

// DefaultDebounceDelay is how long the watcher waits after a filesystem
// event before rescanning, so a checkpoint being written (directory first,
// marker file later) is picked up in one piece.
const DefaultDebounceDelay = 200 * time.Millisecond

// Watch keeps the batch alive after the initial run: it monitors root and
// replays checkpoint directories as they appear. Each new unit is replayed
// exactly once per watch session and its result is added to report.
//
// Units already present when Watch starts are assumed to have been handled
// by Run and are only marked as seen. Watch blocks until ctx is canceled.
func (c *Coordinator) Watch(ctx context.Context, root string, spec domain.ReplayCommandSpec, report *domain.BatchReport) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(root); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDirectoryUnavailable, err)
	}

	seen := make(map[string]struct{})
	if err := c.markSeen(ctx, root, seen); err != nil {
		return err
	}

	c.setState(StateRunning)
	c.logger.Info("watching for new checkpoints", ports.String("root", root))

	var debounce *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			c.setState(StateDone)
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(DefaultDebounceDelay)
				fire = debounce.C
			} else {
				debounce.Reset(DefaultDebounceDelay)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.logger.Warn("watch error", ports.Err(err))

		case <-fire:
			if err := c.replayNew(ctx, root, spec, report, seen); err != nil {
				return err
			}
		}
	}
}

// markSeen records the units currently under root without replaying them.
func (c *Coordinator) markSeen(ctx context.Context, root string, seen map[string]struct{}) error {
	units, err := c.locator.Locate(ctx, root)
	if err != nil {
		return err
	}
	for _, unit := range units {
		seen[unit.ID] = struct{}{}
	}
	return nil
}

// replayNew rescans root and runs every unit not seen before, recording the
// results in report.
func (c *Coordinator) replayNew(ctx context.Context, root string, spec domain.ReplayCommandSpec, report *domain.BatchReport, seen map[string]struct{}) error {
	units, err := c.locator.Locate(ctx, root)
	if err != nil {
		return err
	}
	for _, unit := range units {
		if _, ok := seen[unit.ID]; ok {
			continue
		}
		seen[unit.ID] = struct{}{}
		c.logger.Info("new checkpoint detected", ports.String("unit", unit.ID))
		c.record(report, c.runUnit(ctx, spec, unit))
	}
	return nil
}
