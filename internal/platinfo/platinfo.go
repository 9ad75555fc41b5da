// Package platinfo reads the platform descriptor file every checkpoint
// carries. The replay core only checks the file's presence; the fileopt
// tooling also needs the byte order it declares for decoding kfd dumps.
package platinfo

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// FileName is the descriptor's fixed name at the top level of a checkpoint
// directory.
const FileName = "platinfo"

// magic is the two-byte file signature.
const magic = "pi"

// ErrBadMagic is returned when a file is not a valid platinfo descriptor.
var ErrBadMagic = errors.New("platinfo: bad magic")

// Info holds the decoded platform descriptor.
type Info struct {
	// Little reports whether the checkpoint's data is little-endian.
	Little bool
}

// Order returns the byte order for decoding the checkpoint's binary
// artifacts.
func (i Info) Order() binary.ByteOrder {
	if i.Little {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// Read decodes the platinfo descriptor at path. The layout is the magic
// "pi" followed by one endianness byte (zero means little-endian).
func Read(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	var header [3]byte
	if _, err := io.ReadFull(f, header[:]); err != nil {
		return Info{}, fmt.Errorf("%w: %q", ErrBadMagic, path)
	}
	if string(header[:2]) != magic {
		return Info{}, fmt.Errorf("%w: %q", ErrBadMagic, path)
	}
	return Info{Little: header[2] == 0}, nil
}
