// Package syserr maps raw operating system error numbers onto the error
// values returned by the blkdev and ptrace packages.
//
// The numeric code is never interpreted or dropped: callers may branch on
// the exact errno for platform specific recovery, either with errors.Is or
// by reading Error.Errno directly.
package syserr

import (
	"errors"
	"fmt"
)

// Error kinds. Every *Error wraps exactly one of these.
var (
	// ErrDeviceOpen indicates the device path could not be opened.
	ErrDeviceOpen = errors.New("cannot open device")

	// ErrIoctl indicates a geometry ioctl failed.
	ErrIoctl = errors.New("ioctl failed")

	// ErrTrace indicates a process trace request failed.
	ErrTrace = errors.New("ptrace failed")

	// ErrStructurallyUnsupported indicates the operation does not exist on
	// this platform. No system call was attempted.
	ErrStructurallyUnsupported = errors.New("operation not supported on this platform")

	// ErrUnsupportedPlatform indicates the build target has no
	// implementation at all. No system call was attempted.
	ErrUnsupportedPlatform = errors.New("not implemented for this platform")
)

// Error is the error value produced by the native layer.
type Error struct {
	// Op is the name of the failed operation, e.g. "attach" or "BLKGETSIZE".
	Op string
	// Errno is the raw error number, unchanged.
	Errno Errno
	// Kind is one of the Err* kinds of this package.
	Kind error
	// Cause is the original error when it was not a bare errno.
	Cause error
}

func (e *Error) Error() string {
	switch {
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Cause)
	case e.Errno != 0:
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Errno)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Kind)
}

// Unwrap exposes the kind, the errno and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Errno != 0 {
		errs = append(errs, e.Errno)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// Code returns the raw error number.
func (e *Error) Code() int {
	return int(e.Errno)
}

// Negated returns the error number in the kernel return convention (-errno).
func (e *Error) Negated() int {
	return -int(e.Errno)
}

// Unsupported reports whether the operation is absent on this platform or
// build target, as opposed to having failed in the kernel.
func (e *Error) Unsupported() bool {
	return e.Kind == ErrStructurallyUnsupported || e.Kind == ErrUnsupportedPlatform
}

// Map wraps err into an *Error of the given kind. The first Errno
// found in the chain of err is recorded. Map returns nil if err is nil.
func Map(op string, kind error, err error) error {
	if err == nil {
		return nil
	}
	var errno Errno
	if errors.As(err, &errno) {
		if err == error(errno) {
			return &Error{Op: op, Errno: errno, Kind: kind}
		}
		return &Error{Op: op, Errno: errno, Kind: kind, Cause: err}
	}
	return &Error{Op: op, Kind: kind, Cause: err}
}

// FromErrno wraps a raw errno returned by unix.Syscall and friends.
// A zero errno means success and yields nil.
func FromErrno(op string, kind error, errno Errno) error {
	if errno == 0 {
		return nil
	}
	return &Error{Op: op, Errno: errno, Kind: kind}
}

// Unsupported returns the fixed "operation not supported" outcome.
func Unsupported(op string, kind error) error {
	return &Error{Op: op, Errno: eopnotsupp, Kind: kind}
}

// NotImplemented returns the fixed outcome of the block device fallback.
func NotImplemented(op string) error {
	return &Error{Op: op, Errno: enosys, Kind: ErrUnsupportedPlatform}
}

// IsUnsupported reports whether err is an *Error flagged as unsupported.
func IsUnsupported(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Unsupported()
}

// ErrnoOf returns the raw error number carried by err, or 0.
func ErrnoOf(err error) Errno {
	var e *Error
	if errors.As(err, &e) {
		return e.Errno
	}
	var errno Errno
	if errors.As(err, &errno) {
		return errno
	}
	return 0
}
