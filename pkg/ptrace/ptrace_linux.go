package ptrace

import (
	"math/bits"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/kusumi/fileobj/pkg/syserr"
)

const platform = "linux"

var capabilities = Capabilities{Control: true, WordAccess: true}

// The transfer unit is a long.
const wordSize = Width(bits.UintSize / 8)

func ptrace(request int, pid int, addr, data uintptr) syserr.Errno {
	_, _, errno := unix.Syscall6(unix.SYS_PTRACE, uintptr(request), uintptr(pid), addr, data, 0, 0)
	return errno
}

func attach(pid int) error {
	return syserr.FromErrno("attach", syserr.ErrTrace, ptrace(unix.PTRACE_ATTACH, pid, 0, 0))
}

func detach(pid int) error {
	return syserr.FromErrno("detach", syserr.ErrTrace, ptrace(unix.PTRACE_DETACH, pid, 0, 0))
}

func cont(pid int) error {
	return syserr.FromErrno("cont", syserr.ErrTrace, ptrace(unix.PTRACE_CONT, pid, 0, 0))
}

func kill(pid int) error {
	return syserr.FromErrno("kill", syserr.ErrTrace, ptrace(unix.PTRACE_KILL, pid, 0, 0))
}

// peek issues a raw PTRACE_PEEK* request. Unlike the glibc wrapper the
// kernel stores the word at data and returns 0, so the errno alone tells
// a failure from a word that happens to be -1.
func peek(op string, request int, pid int, addr int64) (Word, error) {
	var v uintptr
	_, _, errno := unix.Syscall6(unix.SYS_PTRACE, uintptr(request), uintptr(pid), uintptr(addr), uintptr(unsafe.Pointer(&v)), 0, 0)
	if errno != 0 {
		return Word{}, syserr.FromErrno(op, syserr.ErrTrace, errno)
	}
	return Word{Value: int64(int(v)), Size: wordSize}, nil
}

func peekText(pid int, addr int64) (Word, error) {
	return peek("peektext", unix.PTRACE_PEEKTEXT, pid, addr)
}

func peekData(pid int, addr int64) (Word, error) {
	return peek("peekdata", unix.PTRACE_PEEKDATA, pid, addr)
}

func pokeText(pid int, addr int64, word int64) error {
	return syserr.FromErrno("poketext", syserr.ErrTrace, ptrace(unix.PTRACE_POKETEXT, pid, uintptr(addr), uintptr(word)))
}

func pokeData(pid int, addr int64, word int64) error {
	return syserr.FromErrno("pokedata", syserr.ErrTrace, ptrace(unix.PTRACE_POKEDATA, pid, uintptr(addr), uintptr(word)))
}
