//go:build darwin || freebsd || netbsd || openbsd || dragonfly

package ptrace

import (
	"golang.org/x/sys/unix"

	"github.com/kusumi/fileobj/pkg/syserr"
)

// ptrace issues ptrace(request, pid, addr, data). The result is the value
// returned by the call, which for PT_READ_* is the word read.
func ptrace(request int, pid int, addr uintptr, data int) (uintptr, syserr.Errno) {
	r1, _, errno := unix.Syscall6(unix.SYS_PTRACE, uintptr(request), uintptr(pid), addr, uintptr(data), 0, 0)
	return r1, errno
}

func attach(pid int) error {
	_, errno := ptrace(ptAttach, pid, 0, 0)
	return syserr.FromErrno("attach", syserr.ErrTrace, errno)
}

func detach(pid int) error {
	_, errno := ptrace(ptDetach, pid, detachAddr, 0)
	return syserr.FromErrno("detach", syserr.ErrTrace, errno)
}

// An addr of 1 resumes at the stopped location.
func cont(pid int) error {
	_, errno := ptrace(ptContinue, pid, 1, 0)
	return syserr.FromErrno("cont", syserr.ErrTrace, errno)
}

func kill(pid int) error {
	_, errno := ptrace(ptKill, pid, 0, 0)
	return syserr.FromErrno("kill", syserr.ErrTrace, errno)
}
