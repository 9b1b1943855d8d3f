package blkdev

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

const platform = "linux"

var capabilities = Capabilities{Query: true}

const charDisks = false

// <linux/fs.h>
const (
	blkgetsize = 0x1260 // _IO(0x12, 96), unsigned long
	blksszget  = 0x1268 // _IO(0x12, 104), int
)

func query(path string) (Info, error) {
	fd, err := openDevice(path)
	if err != nil {
		return Info{}, err
	}
	defer unix.Close(fd)

	var sectors uint
	if err := ioctl(fd, "BLKGETSIZE", blkgetsize, unsafe.Pointer(&sectors)); err != nil {
		return Info{}, err
	}
	var sectorSize int32
	if err := ioctl(fd, "BLKSSZGET", blksszget, unsafe.Pointer(&sectorSize)); err != nil {
		return Info{}, err
	}
	return sectorCountInfo(uint64(sectors), sectorSize), nil
}
