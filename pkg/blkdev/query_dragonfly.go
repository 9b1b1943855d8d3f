package blkdev

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

const platform = "dragonfly"

var capabilities = Capabilities{Query: true}

const charDisks = true

// <sys/diskslice.h>
var diocgpart = ior('d', 104, partinfoSize)

func query(path string) (Info, error) {
	fd, err := openDevice(path)
	if err != nil {
		return Info{}, err
	}
	defer unix.Close(fd)

	var buf [partinfoSize]byte
	if err := ioctl(fd, "DIOCGPART", diocgpart, unsafe.Pointer(&buf[0])); err != nil {
		return Info{}, err
	}
	return decodePartinfo(buf[:])
}
