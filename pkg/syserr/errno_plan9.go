package syserr

import "strconv"

// Errno is a numeric error code. Plan 9 reports errors as strings, so only
// the fixed codes produced by this package are ever stored here.
type Errno uintptr

const (
	eopnotsupp Errno = 0x5f
	enosys     Errno = 0x26
)

func (e Errno) Error() string {
	switch e {
	case eopnotsupp:
		return "operation not supported"
	case enosys:
		return "function not implemented"
	}
	return "errno " + strconv.Itoa(int(e))
}
