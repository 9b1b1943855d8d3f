//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly || (solaris && cgo)

package blkdev

import (
	"os"

	"golang.org/x/sys/unix"

	"github.com/kusumi/fileobj/pkg/syserr"
)

// openDevice opens path read-only. The caller must close the returned
// descriptor with unix.Close before returning.
func openDevice(path string) (int, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return -1, syserr.Map("open", syserr.ErrDeviceOpen, &os.PathError{Op: "open", Path: path, Err: err})
	}
	return fd, nil
}

// IsBlockDevice reports whether path names a disk device. Raw disks are
// character devices on the BSDs and Darwin, so those count too there.
func IsBlockDevice(path string) (bool, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return false, syserr.Map("stat", syserr.ErrDeviceOpen, &os.PathError{Op: "stat", Path: path, Err: err})
	}
	switch uint32(st.Mode) & unix.S_IFMT {
	case unix.S_IFBLK:
		return true, nil
	case unix.S_IFCHR:
		return charDisks, nil
	}
	return false, nil
}
