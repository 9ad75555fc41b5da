// Package fileopt optimizes the file dumps of a checkpoint set. Checkpoints
// taken with dump-after-open record the host paths of the guest's open
// files; this tool copies those files next to the checkpoints and rewrites
// the kfd records to point at the copies, keeping only one copy of each
// read-only file referenced by multiple dumps.
package fileopt

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/perflab-io/ckptreplay/internal/kfd"
	"github.com/perflab-io/ckptreplay/internal/platinfo"
	"github.com/perflab-io/ckptreplay/internal/ports"
)

// Optimizer rewrites a checkpoint set in place.
type Optimizer struct {
	logger ports.Logger
}

// New creates an optimizer logging through the given logger.
func New(logger ports.Logger) *Optimizer {
	return &Optimizer{logger: logger}
}

// Run optimizes every checkpoint directory under parentDir. All checkpoints
// must agree on the byte order their platinfo declares. Only kfd records
// with absolute target paths are touched:
//
//   - read-only targets are copied once to parentDir as <base>.<id> and
//     shared between records
//   - write-only targets become fresh empty files under the checkpoint's
//     file/kfd directory
//   - read-write targets are copied per record under file/kfd
//
// Records are rewritten in place after all copies succeed.
func (o *Optimizer) Run(parentDir string) error {
	info, dumps, err := o.collect(parentDir)
	if err != nil {
		return err
	}

	copied := make(map[string]int)
	for _, d := range dumps {
		if err := o.relocate(parentDir, d, copied); err != nil {
			return err
		}
	}

	for _, d := range dumps {
		if err := d.Write(info.Order()); err != nil {
			return fmt.Errorf("rewrite %q: %w", d.File, err)
		}
	}

	o.logger.Info("file dumps optimized",
		ports.Int("records", len(dumps)),
		ports.Int("shared_files", len(copied)),
	)
	return nil
}

// collect reads the platinfo of every checkpoint under parentDir, checks
// they agree, and gathers the kfd records with absolute targets.
func (o *Optimizer) collect(parentDir string) (platinfo.Info, []*kfd.Dump, error) {
	entries, err := os.ReadDir(parentDir)
	if err != nil {
		return platinfo.Info{}, nil, err
	}

	var (
		info  platinfo.Info
		have  bool
		dumps []*kfd.Dump
	)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		ckptDir := filepath.Join(parentDir, entry.Name())
		pi, err := platinfo.Read(filepath.Join(ckptDir, platinfo.FileName))
		if err != nil {
			return platinfo.Info{}, nil, err
		}
		if !have {
			info = pi
			have = true
		} else if pi != info {
			return platinfo.Info{}, nil, fmt.Errorf("endianness mismatch in %q", ckptDir)
		}

		ckptDumps, err := kfd.ScanCheckpoint(info.Order(), ckptDir)
		if err != nil {
			return platinfo.Info{}, nil, err
		}
		for _, d := range ckptDumps {
			if d.TargetIsAbs() {
				dumps = append(dumps, d)
			}
		}
	}
	return info, dumps, nil
}

// relocate copies one record's target into the checkpoint set and updates
// the record's target path.
func (o *Optimizer) relocate(parentDir string, d *kfd.Dump, copied map[string]int) error {
	base := path.Base(d.TargetPath)

	switch {
	case d.ReadOnly():
		id, ok := copied[d.TargetPath]
		if !ok {
			id = len(copied)
		}
		newTarget := fmt.Sprintf("../%s.%d", base, id)
		if !ok {
			if err := copyFile(d.TargetPath, d.NativePath(newTarget)); err != nil {
				return err
			}
			copied[d.TargetPath] = id
			o.logger.Debug("shared read-only file",
				ports.String("source", d.TargetPath),
				ports.String("copy", filepath.Join(parentDir, fmt.Sprintf("%s.%d", base, id))),
			)
		}
		d.TargetPath = newTarget

	case d.WriteOnly():
		newTarget := fmt.Sprintf("file/kfd/%s.%s", base, filepath.Base(d.File))
		f, err := os.Create(d.NativePath(newTarget))
		if err != nil {
			return err
		}
		f.Close()
		d.TargetPath = newTarget

	case d.ReadWrite():
		newTarget := fmt.Sprintf("file/kfd/%s.%s", base, filepath.Base(d.File))
		if err := copyFile(d.TargetPath, d.NativePath(newTarget)); err != nil {
			return err
		}
		d.TargetPath = newTarget

	default:
		return fmt.Errorf("unknown kfd access mode in %q", d.File)
	}
	return nil
}

// copyFile copies src to dst, following symlinks.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
