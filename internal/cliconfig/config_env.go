package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (CKPTREPLAY_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("command", os.Getenv("CKPTREPLAY_COMMAND"), &cfg.Command)
	s.setString("root", os.Getenv("CKPTREPLAY_ROOT"), &cfg.Root)
	s.setString("out-dir", os.Getenv("CKPTREPLAY_OUTPUT_DIR"), &cfg.OutputDir)
	s.setString("marker", os.Getenv("CKPTREPLAY_MARKER"), &cfg.Marker)
	s.setString("report", os.Getenv("CKPTREPLAY_REPORT_PATH"), &cfg.ReportPath)

	if err := s.setIntFromString("jobs", os.Getenv("CKPTREPLAY_JOBS"), &cfg.Jobs); err != nil {
		return err
	}
	if err := s.setDuration("timeout", os.Getenv("CKPTREPLAY_TIMEOUT"), &cfg.Timeout); err != nil {
		return err
	}

	s.setBoolFromString("watch", os.Getenv("CKPTREPLAY_WATCH"), &cfg.Watch)

	return nil
}
