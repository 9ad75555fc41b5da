// Package kfd decodes and rewrites the kernel file descriptor dump records a
// checkpoint stores under file/kfd/. Each record describes one open file in
// the guest: its seek offset, open flags, and the host path backing it.
package kfd

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// Record header layout: offset uint64, flags uint32, pathLen uint32, in the
// checkpoint's byte order, followed by pathLen bytes of ASCII path.
const headerSize = 16

// Open flag access modes, mirroring the guest kernel's O_ACCMODE bits.
const (
	accessModeMask = 0o3
	accessRead     = 0o0
	accessWrite    = 0o1
	accessReadWr   = 0o2
)

// Dump is one decoded kfd record.
type Dump struct {
	// File is the host path of the record itself (…/file/kfd/<n>).
	File string

	// Offset is the guest file's seek position at checkpoint time.
	Offset uint64

	// Flags are the guest open(2) flags.
	Flags uint32

	// TargetPath is the slash-separated path the descriptor refers to,
	// either absolute or relative to the checkpoint directory.
	TargetPath string
}

// Read decodes the kfd record stored at file using the given byte order.
func Read(order binary.ByteOrder, file string) (*Dump, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	if len(data) < headerSize {
		return nil, fmt.Errorf("kfd record %q: truncated header", file)
	}

	d := &Dump{
		File:   file,
		Offset: order.Uint64(data[0:8]),
		Flags:  order.Uint32(data[8:12]),
	}
	pathLen := int(order.Uint32(data[12:16]))
	if len(data) < headerSize+pathLen {
		return nil, fmt.Errorf("kfd record %q: truncated path", file)
	}
	d.TargetPath = string(data[headerSize : headerSize+pathLen])
	return d, nil
}

// Write rewrites the record in place with the current field values.
func (d *Dump) Write(order binary.ByteOrder) error {
	buf := make([]byte, headerSize, headerSize+len(d.TargetPath))
	order.PutUint64(buf[0:8], d.Offset)
	order.PutUint32(buf[8:12], d.Flags)
	order.PutUint32(buf[12:16], uint32(len(d.TargetPath)))
	buf = append(buf, d.TargetPath...)
	return os.WriteFile(d.File, buf, 0o644)
}

// ReadOnly reports whether the descriptor was opened read-only.
func (d *Dump) ReadOnly() bool {
	return d.Flags&accessModeMask == accessRead
}

// WriteOnly reports whether the descriptor was opened write-only.
func (d *Dump) WriteOnly() bool {
	return d.Flags&accessModeMask == accessWrite
}

// ReadWrite reports whether the descriptor was opened read-write.
func (d *Dump) ReadWrite() bool {
	return d.Flags&accessModeMask == accessReadWr
}

// TargetIsAbs reports whether the target path is absolute in the guest.
func (d *Dump) TargetIsAbs() bool {
	return len(d.TargetPath) > 0 && d.TargetPath[0] == '/'
}

// NativePath resolves a slash-separated target path against the record's
// checkpoint directory, yielding a path usable on the host OS. The record
// always lives at <checkpoint>/file/kfd/<n>.
func (d *Dump) NativePath(target string) string {
	ckptDir := filepath.Dir(filepath.Dir(filepath.Dir(d.File)))
	return filepath.Join(ckptDir, filepath.FromSlash(target))
}

// ScanCheckpoint reads every kfd record of one checkpoint directory, in
// ascending descriptor-number order. Only numerically named entries are
// records; anything else in the directory is ignored.
func ScanCheckpoint(order binary.ByteOrder, ckptDir string) ([]*Dump, error) {
	kfdDir := filepath.Join(ckptDir, "file", "kfd")
	entries, err := os.ReadDir(kfdDir)
	if err != nil {
		return nil, err
	}

	var numbers []int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		n, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue
		}
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	dumps := make([]*Dump, 0, len(numbers))
	for _, n := range numbers {
		d, err := Read(order, filepath.Join(kfdDir, strconv.Itoa(n)))
		if err != nil {
			return nil, err
		}
		dumps = append(dumps, d)
	}
	return dumps, nil
}
