package strace

import "fmt"

// argFormatter renders one raw argument register for display.
type argFormatter func(uint64) string

// fmtI32 renders the low 32 bits as a signed integer.
func fmtI32(v uint64) string {
	return fmt.Sprintf("%d", int32(uint32(v)))
}

// fmtU32 renders the low 32 bits as an unsigned integer.
func fmtU32(v uint64) string {
	return fmt.Sprintf("%d", uint32(v))
}

// fmtPtr renders a guest pointer.
func fmtPtr(v uint64) string {
	return fmt.Sprintf("0x%x", v)
}

// fmtSize renders an unsigned size.
func fmtSize(v uint64) string {
	return fmt.Sprintf("%d", v)
}

// fmtOff renders a signed 64-bit offset.
func fmtOff(v uint64) string {
	return fmt.Sprintf("%d", int64(v))
}

type syscallSig struct {
	name string
	args []argFormatter
}

func sig(name string, args ...argFormatter) syscallSig {
	return syscallSig{name: name, args: args}
}

// table maps RISC-V Linux syscall numbers to their display signatures.
// Numbers at 1024 and above are the legacy path-based compatibility calls.
var table = map[uint64]syscallSig{
	93:  sig("exit", fmtI32),
	94:  sig("exit_group", fmtI32),
	172: sig("getpid"),
	129: sig("kill", fmtI32, fmtI32),
	131: sig("tgkill", fmtI32, fmtI32, fmtI32),
	63:  sig("read", fmtI32, fmtPtr, fmtSize),
	64:  sig("write", fmtI32, fmtPtr, fmtSize),
	56:  sig("openat", fmtI32, fmtPtr, fmtI32, fmtI32),
	57:  sig("close", fmtI32),
	62:  sig("lseek", fmtI32, fmtOff, fmtI32),
	214: sig("brk", fmtPtr),
	37:  sig("linkat", fmtI32, fmtPtr, fmtI32, fmtPtr, fmtI32),
	35:  sig("unlinkat", fmtI32, fmtPtr, fmtI32),
	34:  sig("mkdirat", fmtI32, fmtPtr, fmtI32),
	38:  sig("renameat", fmtI32, fmtPtr, fmtI32, fmtPtr),
	49:  sig("chdir", fmtPtr),
	17:  sig("getcwd", fmtPtr, fmtSize),
	80:  sig("fstat", fmtI32, fmtPtr),
	79:  sig("fstatat", fmtI32, fmtPtr, fmtPtr, fmtI32),
	48:  sig("faccessat", fmtI32, fmtPtr, fmtI32),
	67:  sig("pread", fmtI32, fmtPtr, fmtSize, fmtOff),
	68:  sig("pwrite", fmtI32, fmtPtr, fmtSize, fmtOff),
	160: sig("uname", fmtPtr),
	174: sig("getuid"),
	175: sig("geteuid"),
	176: sig("getgid"),
	177: sig("getegid"),
	178: sig("gettid"),
	222: sig("mmap", fmtPtr, fmtSize, fmtI32, fmtI32, fmtI32, fmtOff),
	215: sig("munmap", fmtPtr, fmtSize),
	216: sig("mremap", fmtPtr, fmtSize, fmtSize, fmtI32),
	226: sig("mprotect", fmtPtr, fmtSize, fmtI32),
	261: sig("prlimit64", fmtI32, fmtI32, fmtPtr, fmtPtr),
	134: sig("rt_sigaction", fmtI32, fmtPtr, fmtPtr, fmtSize),
	66:  sig("writev", fmtI32, fmtPtr, fmtI32),
	169: sig("gettimeofday", fmtPtr),
	153: sig("times", fmtPtr),
	25:  sig("fcntl", fmtI32, fmtI32, fmtI32),
	46:  sig("ftruncate", fmtI32, fmtOff),
	61:  sig("getdents", fmtI32, fmtPtr, fmtI32),
	23:  sig("dup", fmtI32),
	24:  sig("dup3", fmtI32, fmtI32, fmtI32),
	78:  sig("readlinkat", fmtI32, fmtPtr, fmtPtr, fmtSize),
	135: sig("rt_sigprocmask", fmtI32, fmtPtr, fmtPtr),
	29:  sig("ioctl", fmtI32, fmtI32),
	163: sig("getrlimit", fmtI32, fmtPtr),
	164: sig("setrlimit", fmtI32, fmtPtr),
	165: sig("getrusage", fmtI32, fmtPtr),
	113: sig("clock_gettime", fmtI32, fmtPtr),
	96:  sig("set_tid_address", fmtPtr),
	99:  sig("set_robust_list", fmtPtr, fmtSize),
	233: sig("madvise", fmtPtr, fmtSize, fmtI32),
	291: sig("statx", fmtI32, fmtPtr, fmtI32, fmtU32, fmtPtr),
	71:  sig("sendfile", fmtI32, fmtI32, fmtOff, fmtSize),

	1024: sig("open", fmtPtr, fmtI32, fmtI32),
	1025: sig("link", fmtPtr, fmtPtr),
	1026: sig("unlink", fmtPtr),
	1030: sig("mkdir", fmtPtr, fmtI32),
	1033: sig("access", fmtPtr, fmtI32),
	1038: sig("stat", fmtPtr, fmtPtr),
	1039: sig("lstat", fmtPtr, fmtPtr),
	1062: sig("time", fmtPtr),
}
