package strace

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"
)

// encodeRecord builds the on-disk form of one trace record.
func encodeRecord(args [6]uint64, num, epc uint64) []byte {
	buf := make([]byte, RecordSize)
	for i, a := range args {
		binary.LittleEndian.PutUint64(buf[i*8:], a)
	}
	binary.LittleEndian.PutUint64(buf[48:], num)
	binary.LittleEndian.PutUint64(buf[56:], epc)
	return buf
}

func TestDecode(t *testing.T) {
	raw := encodeRecord([6]uint64{1, 2, 3, 4, 5, 6}, 64, 0x80001234)
	r, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if r.Num != 64 || r.EPC != 0x80001234 {
		t.Errorf("decoded = %+v", r)
	}
	for i, want := range []uint64{1, 2, 3, 4, 5, 6} {
		if r.Args[i] != want {
			t.Errorf("Args[%d] = %d, want %d", i, r.Args[i], want)
		}
	}
}

func TestDecode_Truncated(t *testing.T) {
	if _, err := Decode(make([]byte, RecordSize-1)); err == nil {
		t.Error("Decode() accepted a short record")
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		idx  int
		want string
	}{
		{
			name: "write",
			rec:  Record{Args: [6]uint64{1, 0x1000, 42}, Num: 64, EPC: 0x80001234},
			idx:  7,
			want: "000007: epc=0000000080001234, write(1, 0x1000, 42)",
		},
		{
			name: "no-arg syscall",
			rec:  Record{Num: 172, EPC: 0x10},
			idx:  0,
			want: "000000: epc=0000000000000010, getpid()",
		},
		{
			name: "signed i32 argument",
			rec:  Record{Args: [6]uint64{0xFFFFFFFF}, Num: 93, EPC: 0},
			idx:  1,
			want: "000001: epc=0000000000000000, exit(-1)",
		},
		{
			name: "signed offset",
			rec:  Record{Args: [6]uint64{3, ^uint64(0), 0}, Num: 62, EPC: 0},
			idx:  2,
			want: "000002: epc=0000000000000000, lseek(3, -1, 0)",
		},
		{
			name: "unknown syscall",
			rec:  Record{Num: 9999, EPC: 0xabc},
			idx:  3,
			want: "000003: epc=0000000000000abc, <UNKNOWN>()",
		},
		{
			name: "legacy open",
			rec:  Record{Args: [6]uint64{0x2000, 0, 0}, Num: 1024, EPC: 0x44},
			idx:  4,
			want: "000004: epc=0000000000000044, open(0x2000, 0, 0)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.idx, tt.rec); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDump(t *testing.T) {
	var in bytes.Buffer
	in.Write(encodeRecord([6]uint64{1, 0x1000, 5}, 64, 0x100))
	in.Write(encodeRecord([6]uint64{0}, 93, 0x104))

	var out bytes.Buffer
	if err := Dump(&out, &in); err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "000000: ") || !strings.Contains(lines[0], "write(") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "000001: ") || !strings.Contains(lines[1], "exit(") {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestDump_Empty(t *testing.T) {
	var out bytes.Buffer
	if err := Dump(&out, bytes.NewReader(nil)); err != nil {
		t.Errorf("Dump() on empty input = %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("output = %q, want empty", out.String())
	}
}

func TestDump_TruncatedTrailingRecord(t *testing.T) {
	in := bytes.NewReader(encodeRecord([6]uint64{}, 172, 0)[:40])
	if err := Dump(&bytes.Buffer{}, in); err == nil {
		t.Error("Dump() accepted a truncated trailing record")
	}
}
