//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly && !solaris && !windows

package ptrace

import "github.com/kusumi/fileobj/pkg/syserr"

const platform = "unsupported"

var unsupportedKind = syserr.ErrUnsupportedPlatform
