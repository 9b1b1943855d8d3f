//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package blkdev

import (
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/kusumi/fileobj/pkg/syserr"
)

// ioctl issues request req on fd with arg pointing at the result buffer.
func ioctl(fd int, name string, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg))
	return syserr.FromErrno(name, syserr.ErrIoctl, errno)
}
