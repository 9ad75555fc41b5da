package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/perflab-io/ckptreplay"
	"github.com/perflab-io/ckptreplay/internal/cliconfig"
	"github.com/perflab-io/ckptreplay/internal/fileopt"
	"github.com/perflab-io/ckptreplay/internal/strace"
	"github.com/perflab-io/ckptreplay/pkg/log"
)

const helpDescription = `
Replay saved emulator checkpoints in batch through an external simulator.

Highlights:
  - Discovers checkpoints by marker file; each gets its own stdout/stderr sinks.
  - One failing checkpoint never stops the rest of the batch.
  - Configure via file, env (CKPTREPLAY_*), or flags.
`

var exampleUsage = strings.TrimSpace(`
  ckptreplay run sim /data/ckpts
  ckptreplay run sim-restricted /data/ckpts --jobs 4 --report report.yaml
  ckptreplay fileopt /data/ckpts
  ckptreplay strace /data/ckpts/boot/strace.bin
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	logger := cliconfig.Logger()

	root := &cobra.Command{
		Use:           "ckptreplay",
		Short:         "Replay saved emulator checkpoints in batch",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	runCmd := &cobra.Command{
		Use:   "run [command] [root]",
		Short: "Replay every checkpoint found under a directory",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Build set of changed flags so file/env config never overrides them.
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			// Positional args count as explicit settings too.
			if len(args) > 0 {
				cfg.Command = args[0]
				changed["command"] = true
			}
			if len(args) > 1 {
				cfg.Root = args[1]
				changed["root"] = true
			}

			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}
			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// Environment overrides file config but is overridden by flags.
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}
			logger.Info().Interface("config", cfg).Msg("configuration")

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			batch, err := ckptreplay.Run(ctx, cfg, log.NewZerologAdapterWithLogger(logger))
			if err != nil {
				return err
			}
			if !batch.Succeeded() {
				return fmt.Errorf("%d of %d checkpoints failed: %s",
					batch.FailedCount(), batch.Attempted(), strings.Join(batch.FailedUnits(), ", "))
			}
			logger.Info().Int("attempted", batch.Attempted()).Msg("all checkpoints passed")
			return nil
		},
	}
	runCmd.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.ckptreplay/config.toml)")
	runCmd.Flags().StringVar(&cfg.Command, "command", cfg.Command, "simulator command to invoke per checkpoint")
	runCmd.Flags().StringVar(&cfg.Root, "root", cfg.Root, "directory scanned for checkpoints")
	runCmd.Flags().StringVar(&cfg.OutputDir, "out-dir", cfg.OutputDir, "directory for per-checkpoint .out/.err sinks")
	runCmd.Flags().StringVar(&cfg.Marker, "marker", cfg.Marker, "marker file that identifies a checkpoint directory")
	runCmd.Flags().StringVar(&cfg.ReportPath, "report", cfg.ReportPath, "write a YAML batch report to this path")
	runCmd.Flags().IntVar(&cfg.Jobs, "jobs", cfg.Jobs, "number of checkpoints replayed concurrently")
	runCmd.Flags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "per-checkpoint timeout (0 disables)")
	runCmd.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "keep watching the root and replay checkpoints as they appear")

	fileoptCmd := &cobra.Command{
		Use:   "fileopt <parent-dir>",
		Short: "Localize absolute file-dump targets for every checkpoint under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opt := fileopt.New(log.NewZerologAdapterWithLogger(logger))
			return opt.Run(args[0])
		},
	}

	straceCmd := &cobra.Command{
		Use:   "strace <file>",
		Short: "Print a recorded syscall trace in human-readable form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			return strace.Dump(os.Stdout, f)
		},
	}

	root.AddCommand(runCmd, fileoptCmd, straceCmd)

	if err := root.Execute(); err != nil {
		logger.Error().Err(err).Msg("ckptreplay")
		os.Exit(1)
	}
}
