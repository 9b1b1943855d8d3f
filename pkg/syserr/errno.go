//go:build !plan9

package syserr

import "syscall"

// Errno is the platform error number type.
type Errno = syscall.Errno

const (
	eopnotsupp = syscall.EOPNOTSUPP
	enosys     = syscall.ENOSYS
)
