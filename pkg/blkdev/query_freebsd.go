package blkdev

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

const platform = "freebsd"

var capabilities = Capabilities{Query: true}

const charDisks = true

// <sys/disk.h>
var (
	diocgsectorsize = ior('d', 128, 4) // u_int
	diocgmediasize  = ior('d', 129, 8) // off_t
)

func query(path string) (Info, error) {
	fd, err := openDevice(path)
	if err != nil {
		return Info{}, err
	}
	defer unix.Close(fd)

	var size uint64
	if err := ioctl(fd, "DIOCGMEDIASIZE", diocgmediasize, unsafe.Pointer(&size)); err != nil {
		return Info{}, err
	}
	var sectorSize uint32
	if err := ioctl(fd, "DIOCGSECTORSIZE", diocgsectorsize, unsafe.Pointer(&sectorSize)); err != nil {
		return Info{}, err
	}
	return Info{Size: size, SectorSize: int32(sectorSize)}, nil
}
