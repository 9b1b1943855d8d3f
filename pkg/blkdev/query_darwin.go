package blkdev

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

const platform = "darwin"

var capabilities = Capabilities{Query: true}

const charDisks = true

// <sys/disk.h>
var (
	dkiocgetblocksize  = ior('d', 24, 4) // uint32_t
	dkiocgetblockcount = ior('d', 25, 8) // uint64_t
)

func query(path string) (Info, error) {
	fd, err := openDevice(path)
	if err != nil {
		return Info{}, err
	}
	defer unix.Close(fd)

	var count uint64
	if err := ioctl(fd, "DKIOCGETBLOCKCOUNT", dkiocgetblockcount, unsafe.Pointer(&count)); err != nil {
		return Info{}, err
	}
	var blockSize uint32
	if err := ioctl(fd, "DKIOCGETBLOCKSIZE", dkiocgetblocksize, unsafe.Pointer(&blockSize)); err != nil {
		return Info{}, err
	}
	return Info{Size: count * uint64(blockSize), SectorSize: int32(blockSize)}, nil
}
