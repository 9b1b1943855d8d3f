// Package blkdev queries the geometry of a block device.
//
// One implementation is compiled per target operating system. Targets
// without an implementation compile a fallback whose Query always fails
// with syserr.ErrUnsupportedPlatform, so the package API is the same
// everywhere.
//
// Query opens the device read-only for the duration of the call and
// closes it on every return path. Nothing is cached: every call issues
// the ioctls again and returns a new Info.
package blkdev

import (
	"github.com/dustin/go-humanize"

	"github.com/kusumi/fileobj/pkg/logflags"
)

// MaxLabelLen is the maximum length of Info.Label.
const MaxLabelLen = 63

// Info describes the geometry of a block device.
type Info struct {
	// Size is the capacity in bytes.
	Size uint64
	// SectorSize is the sector size in bytes as reported by the kernel.
	SectorSize int32
	// Label is the volume type name on platforms that have one, with
	// trailing padding removed. Empty elsewhere.
	Label string
}

// Capabilities describes what the compiled-in implementation provides.
type Capabilities struct {
	// Query indicates Query issues OS calls at all.
	Query bool
	// Label indicates Info.Label may be non-empty.
	Label bool
}

// Query returns the geometry of the device at path.
//
// Failures to open path are reported with syserr.ErrDeviceOpen and failed
// ioctls with syserr.ErrIoctl, both carrying the raw errno.
func Query(path string) (Info, error) {
	info, err := query(path)
	logger := logflags.BlkdevLogger().WithField("path", path)
	if err != nil {
		logger.WithError(err).Debug("query failed")
		return Info{}, err
	}
	logger.Infof("size=%d (%s) sector_size=%d label=%q", info.Size, humanize.IBytes(info.Size), info.SectorSize, info.Label)
	return info, nil
}

// Platform returns the name of the compiled-in implementation.
func Platform() string {
	return platform
}

// Caps returns the capabilities of the compiled-in implementation.
func Caps() Capabilities {
	return capabilities
}
