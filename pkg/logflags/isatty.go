//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly || solaris || windows

package logflags

import "github.com/mattn/go-isatty"

func isTerminalFd(fd uintptr) bool {
	return isatty.IsTerminal(fd)
}
