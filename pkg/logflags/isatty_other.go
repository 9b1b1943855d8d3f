//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly && !solaris && !windows

package logflags

// Logs are never colored here.
func isTerminalFd(fd uintptr) bool {
	return false
}
