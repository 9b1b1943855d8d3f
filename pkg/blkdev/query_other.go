//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly && !(solaris && cgo) && !windows

package blkdev

import "github.com/kusumi/fileobj/pkg/syserr"

const platform = "unsupported"

var capabilities = Capabilities{}

func query(path string) (Info, error) {
	return Info{}, syserr.NotImplemented("query")
}

// IsBlockDevice always fails on this target.
func IsBlockDevice(path string) (bool, error) {
	return false, syserr.NotImplemented("stat")
}
