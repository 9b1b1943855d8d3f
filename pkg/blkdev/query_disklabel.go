//go:build netbsd || openbsd

package blkdev

import (
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

const platform = runtime.GOOS

var capabilities = Capabilities{Query: true, Label: true}

const charDisks = true

// <sys/dkio.h>
var diocgdinfo = ior('d', 101, disklabelSize)

// NetBSD fails the open with EBUSY if the device is already open elsewhere.
func query(path string) (Info, error) {
	fd, err := openDevice(path)
	if err != nil {
		return Info{}, err
	}
	defer unix.Close(fd)

	var buf [disklabelSize]byte
	if err := ioctl(fd, "DIOCGDINFO", diocgdinfo, unsafe.Pointer(&buf[0])); err != nil {
		return Info{}, err
	}
	return decodeDisklabel(buf[:])
}
