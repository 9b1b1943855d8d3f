package blkdev

import (
	"os"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/kusumi/fileobj/pkg/syserr"
)

const platform = "windows"

var capabilities = Capabilities{Query: true}

// <winioctl.h>
const ioctlDiskGetDriveGeometryEx = 0x000700a0

type diskGeometry struct {
	Cylinders         int64
	MediaType         uint32
	TracksPerCylinder uint32
	SectorsPerTrack   uint32
	BytesPerSector    uint32
}

type diskGeometryEx struct {
	Geometry diskGeometry
	DiskSize int64
	Data     [8]byte
}

func query(path string) (Info, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return Info{}, syserr.Map("open", syserr.ErrDeviceOpen, err)
	}
	h, err := windows.CreateFile(p, windows.GENERIC_READ,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE, nil, windows.OPEN_EXISTING, 0, 0)
	if err != nil {
		return Info{}, syserr.Map("open", syserr.ErrDeviceOpen, &os.PathError{Op: "open", Path: path, Err: err})
	}
	defer windows.CloseHandle(h)

	var geo diskGeometryEx
	var n uint32
	err = windows.DeviceIoControl(h, ioctlDiskGetDriveGeometryEx, nil, 0,
		(*byte)(unsafe.Pointer(&geo)), uint32(unsafe.Sizeof(geo)), &n, nil)
	if err != nil {
		return Info{}, syserr.Map("IOCTL_DISK_GET_DRIVE_GEOMETRY_EX", syserr.ErrIoctl, err)
	}
	return Info{Size: uint64(geo.DiskSize), SectorSize: int32(geo.Geometry.BytesPerSector)}, nil
}

// IsBlockDevice reports whether path uses the device namespace, e.g.
// \\.\PhysicalDrive0.
func IsBlockDevice(path string) (bool, error) {
	return strings.HasPrefix(path, `\\.\`), nil
}
