// Package strace decodes the binary system-call trace files the simulator
// records during replay and renders them as readable text. Each record is a
// fixed 64-byte little-endian block: the six argument registers, the
// syscall number, and the exception PC.
package strace

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"
)

// RecordSize is the fixed on-disk size of one trace record.
const RecordSize = 64

// Record is one decoded trace entry.
type Record struct {
	// Args are the syscall argument registers a0 through a5.
	Args [6]uint64

	// Num is the syscall number.
	Num uint64

	// EPC is the exception program counter at the syscall.
	EPC uint64
}

// Decode parses one record from a 64-byte block.
func Decode(b []byte) (Record, error) {
	if len(b) < RecordSize {
		return Record{}, fmt.Errorf("strace: record truncated to %d bytes", len(b))
	}
	var r Record
	for i := range r.Args {
		r.Args[i] = binary.LittleEndian.Uint64(b[i*8:])
	}
	r.Num = binary.LittleEndian.Uint64(b[48:])
	r.EPC = binary.LittleEndian.Uint64(b[56:])
	return r, nil
}

// Format renders a record as one line, prefixed with its index in the
// trace: "NNNNNN: epc=…, name(args)". Unknown syscall numbers print
// <UNKNOWN> with no arguments.
func Format(index int, r Record) string {
	sig, ok := table[r.Num]
	if !ok {
		return fmt.Sprintf("%06d: epc=%016x, <UNKNOWN>()", index, r.EPC)
	}

	args := make([]string, len(sig.args))
	for i, format := range sig.args {
		args[i] = format(r.Args[i])
	}
	return fmt.Sprintf("%06d: epc=%016x, %s(%s)", index, r.EPC, sig.name, strings.Join(args, ", "))
}

// Dump reads records from r until EOF and writes one formatted line per
// record to w. A partial trailing record is an error.
func Dump(w io.Writer, r io.Reader) error {
	buf := make([]byte, RecordSize)
	for i := 0; ; i++ {
		_, err := io.ReadFull(r, buf)
		if err == io.EOF {
			return nil
		}
		if err == io.ErrUnexpectedEOF {
			return fmt.Errorf("strace: truncated record at index %d", i)
		}
		if err != nil {
			return err
		}

		rec, err := Decode(buf)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, Format(i, rec)); err != nil {
			return err
		}
	}
}
