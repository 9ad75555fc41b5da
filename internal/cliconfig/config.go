// Package cliconfig holds the CLI-facing configuration for ckptreplay and
// its layered loading: defaults, then config file, then environment, then
// flags.
package cliconfig

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/perflab-io/ckptreplay/internal/domain"
)

// Config holds CLI configuration for ckptreplay.
type Config struct {
	// Command is the operator-supplied replay command string. It may be
	// empty: the failure then surfaces when the first job fails to spawn.
	Command string

	// Root is the checkpoint root directory to scan.
	Root string

	// OutputDir is where per-unit capture files (<unit>.out, <unit>.err)
	// are written.
	OutputDir string

	// Marker overrides the checkpoint marker file name.
	Marker string

	// Jobs bounds how many replays run at a time.
	Jobs int

	// Timeout bounds each replay job; zero means no limit.
	Timeout time.Duration

	// Watch keeps the driver alive after the initial batch, replaying
	// checkpoints as they appear under Root.
	Watch bool

	// ReportPath, when set, is where the YAML batch report is written.
	ReportPath string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		OutputDir: ".",
		Marker:    domain.DefaultMarkerName,
		Jobs:      1,
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("%w: checkpoint root directory is required", domain.ErrInvalidConfig)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("%w: jobs must be at least 1", domain.ErrInvalidConfig)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", domain.ErrInvalidConfig)
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.Marker == "" {
		c.Marker = domain.DefaultMarkerName
	}
	return nil
}

// Logger returns the console logger used by the CLI.
func Logger() zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(output).With().Timestamp().Logger()
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
