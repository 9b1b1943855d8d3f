package blkdev

import (
	"encoding/binary"
	"errors"
	"strings"
	"unsafe"
)

const ptrSize = unsafe.Sizeof(uintptr(0))

// Legacy unit of the Linux BLKGETSIZE ioctl. The count it returns is in
// 512 byte units whatever the logical sector size of the device is.
const linuxSectorShift = 9

// sizeof(struct disklabel) on NetBSD and OpenBSD: 404 on ILP32, 408 on LP64.
const disklabelSize = 404 + 4*(ptrSize/8)

// sizeof(struct partinfo) on DragonFly: 136 on ILP32, 144 on LP64.
const partinfoSize = 136 + 8*(ptrSize/8)

var errShortBuffer = errors.New("short ioctl buffer")

// sectorCountInfo converts the BLKGETSIZE/BLKSSZGET pair.
func sectorCountInfo(count uint64, sectorSize int32) Info {
	return Info{
		Size:       count << linuxSectorShift,
		SectorSize: sectorSize,
	}
}

// decodeDisklabel extracts the geometry from a raw struct disklabel.
//
//	d_typename   [8:24]
//	d_secsize    [40:44]
//	d_secperunit [60:64]
func decodeDisklabel(b []byte) (Info, error) {
	if len(b) < 64 {
		return Info{}, errShortBuffer
	}
	secsize := binary.NativeEndian.Uint32(b[40:44])
	secperunit := binary.NativeEndian.Uint32(b[60:64])
	return Info{
		Size:       uint64(secperunit) * uint64(secsize),
		SectorSize: int32(secsize),
		Label:      trimLabel(cstring(b[8:24])),
	}, nil
}

// decodePartinfo extracts the geometry from a raw DragonFly struct partinfo.
//
//	media_size    [8:16]
//	media_blksize [24:28]
func decodePartinfo(b []byte) (Info, error) {
	if len(b) < 28 {
		return Info{}, errShortBuffer
	}
	return Info{
		Size:       binary.NativeEndian.Uint64(b[8:16]),
		SectorSize: int32(binary.NativeEndian.Uint32(b[24:28])),
	}, nil
}

// cstring returns b up to the first NUL byte.
func cstring(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// trimLabel strips trailing space padding and bounds the result to
// MaxLabelLen bytes.
func trimLabel(s string) string {
	if len(s) > MaxLabelLen {
		s = s[:MaxLabelLen]
	}
	return strings.TrimRight(s, " ")
}
