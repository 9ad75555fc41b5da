// Package ckptreplay provides a batch harness that replays saved emulator
// checkpoints through an external simulator command.
//
// Example usage:
//
//	cfg := ckptreplay.DefaultConfig()
//	cfg.Command = "sim"
//	cfg.Root = "/data/ckpts"
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	report, err := ckptreplay.Run(context.Background(), cfg, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !report.Succeeded() {
//	    log.Fatalf("failed checkpoints: %v", report.FailedUnits())
//	}
package ckptreplay

import (
	"context"
	"errors"
	"time"

	"github.com/perflab-io/ckptreplay/internal/adapters/execrunner"
	"github.com/perflab-io/ckptreplay/internal/adapters/fs"
	"github.com/perflab-io/ckptreplay/internal/app"
	"github.com/perflab-io/ckptreplay/internal/cliconfig"
	"github.com/perflab-io/ckptreplay/internal/domain"
	"github.com/perflab-io/ckptreplay/internal/report"
	"github.com/perflab-io/ckptreplay/pkg/log"
)

// Config holds the configuration for a batch replay run.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = cliconfig.Config

// BatchReport is the aggregate outcome of one batch run.
type BatchReport = domain.BatchReport

// Errors that callers may want to check with errors.Is.
var (
	ErrDirectoryUnavailable = domain.ErrDirectoryUnavailable
	ErrInvalidConfig        = domain.ErrInvalidConfig
	ErrContextCanceled      = domain.ErrContextCanceled
)

// DefaultConfig returns a Config with sensible default values.
// At minimum, you must set Root (and usually Command) before calling Run.
func DefaultConfig() Config {
	return cliconfig.DefaultConfig()
}

// Run executes one batch replay with the given configuration. It blocks
// until every discovered checkpoint has been processed, or until the
// context is canceled. With cfg.Watch set it then keeps watching the root
// and replaying checkpoints as they appear, until the context is canceled.
//
// The returned report is valid whenever it is non-nil, even alongside an
// error. Pass a nil logger to log to stderr through zerolog.
func Run(ctx context.Context, cfg Config, logger log.Logger) (*BatchReport, error) {
	if logger == nil {
		logger = log.NewZerologAdapter()
	}

	spec := domain.NewReplayCommandSpec(cfg.Command)
	coordinator := app.NewCoordinator(
		fs.NewLocator(cfg.Marker),
		execrunner.New(logger, cfg.Timeout),
		fs.NewDirSinkFactory(cfg.OutputDir),
		logger,
		cfg.Jobs,
	)

	batch, err := coordinator.Run(ctx, cfg.Root, spec)

	if err == nil && cfg.Watch {
		err = coordinator.Watch(ctx, cfg.Root, spec, batch)
		if errors.Is(err, context.Canceled) {
			// Normal termination for watch mode.
			err = nil
		}
	}

	if batch != nil && cfg.ReportPath != "" {
		if writeErr := report.Write(cfg.ReportPath, batch, time.Now()); writeErr != nil {
			logger.Error("failed to write report", log.String("path", cfg.ReportPath), log.Err(writeErr))
			if err == nil {
				err = writeErr
			}
		}
	}
	return batch, err
}
