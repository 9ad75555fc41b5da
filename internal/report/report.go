// Package report renders a finished batch report as a YAML artifact for
// downstream tooling.
package report

import (
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/perflab-io/ckptreplay/internal/domain"
)

// SchemaVersion identifies the report document layout.
const SchemaVersion = 1

// Document is the serialized form of a BatchReport.
type Document struct {
	SchemaVersion int      `yaml:"schema_version"`
	GeneratedAt   string   `yaml:"generated_at"`
	Attempted     int      `yaml:"attempted"`
	Failed        int      `yaml:"failed"`
	FailedUnits   []string `yaml:"failed_units,omitempty"`
	Succeeded     bool     `yaml:"succeeded"`
}

// FromBatch builds a Document from a finished report.
func FromBatch(b *domain.BatchReport, now time.Time) Document {
	return Document{
		SchemaVersion: SchemaVersion,
		GeneratedAt:   now.UTC().Format(time.RFC3339),
		Attempted:     b.Attempted(),
		Failed:        b.FailedCount(),
		FailedUnits:   b.FailedUnits(),
		Succeeded:     b.Succeeded(),
	}
}

// Write marshals the report to YAML and writes it atomically (temp file,
// then rename) so a crash never leaves a truncated report behind.
func Write(path string, b *domain.BatchReport, now time.Time) error {
	data, err := yaml.Marshal(FromBatch(b, now))
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
