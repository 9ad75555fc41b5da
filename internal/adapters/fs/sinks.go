package fs

import (
	"os"
	"path/filepath"

	"github.com/perflab-io/ckptreplay/internal/ports"
)

// Capture file suffixes. For a unit named U the factory produces U.out and
// U.err in the output directory.
const (
	stdoutSuffix = ".out"
	stderrSuffix = ".err"
)

// DirSinkFactory implements ports.SinkFactory by creating per-unit capture
// files in a fixed output directory.
type DirSinkFactory struct {
	dir string
}

// NewDirSinkFactory creates a factory placing sinks in dir. An empty dir
// means the current working directory.
func NewDirSinkFactory(dir string) *DirSinkFactory {
	if dir == "" {
		dir = "."
	}
	return &DirSinkFactory{dir: dir}
}

// Create opens <unitID>.out and <unitID>.err in the output directory,
// truncating any previous contents so each run starts its sinks empty.
func (f *DirSinkFactory) Create(unitID string) (ports.SinkPair, error) {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return ports.SinkPair{}, err
	}

	outPath := filepath.Join(f.dir, unitID+stdoutSuffix)
	errPath := filepath.Join(f.dir, unitID+stderrSuffix)

	out, err := os.Create(outPath)
	if err != nil {
		return ports.SinkPair{}, err
	}
	errSink, err := os.Create(errPath)
	if err != nil {
		out.Close()
		return ports.SinkPair{}, err
	}

	return ports.SinkPair{
		Stdout:     out,
		Stderr:     errSink,
		StdoutPath: outPath,
		StderrPath: errPath,
	}, nil
}
