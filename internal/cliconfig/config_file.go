package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Command    string `toml:"command"`
	Root       string `toml:"root"`
	OutputDir  string `toml:"output_dir"`
	Marker     string `toml:"marker"`
	Jobs       int    `toml:"jobs"`
	Timeout    string `toml:"timeout"`
	Watch      *bool  `toml:"watch"`
	ReportPath string `toml:"report_path"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.ckptreplay/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".ckptreplay", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("command", fc.Command, &cfg.Command)
	s.setString("root", fc.Root, &cfg.Root)
	s.setString("out-dir", fc.OutputDir, &cfg.OutputDir)
	s.setString("marker", fc.Marker, &cfg.Marker)
	s.setString("report", fc.ReportPath, &cfg.ReportPath)

	s.setInt("jobs", fc.Jobs, &cfg.Jobs)

	if err := s.setDuration("timeout", fc.Timeout, &cfg.Timeout); err != nil {
		return err
	}

	s.setBool("watch", fc.Watch, &cfg.Watch)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
