//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package ptrace

import "github.com/kusumi/fileobj/pkg/syserr"

var capabilities = Capabilities{}

const wordSize = WordUnsupported

func attach(pid int) error {
	return syserr.Unsupported("attach", unsupportedKind)
}

func detach(pid int) error {
	return syserr.Unsupported("detach", unsupportedKind)
}

func cont(pid int) error {
	return syserr.Unsupported("cont", unsupportedKind)
}

func kill(pid int) error {
	return syserr.Unsupported("kill", unsupportedKind)
}

func peekText(pid int, addr int64) (Word, error) {
	return Word{}, syserr.Unsupported("peektext", unsupportedKind)
}

func peekData(pid int, addr int64) (Word, error) {
	return Word{}, syserr.Unsupported("peekdata", unsupportedKind)
}

func pokeText(pid int, addr int64, word int64) error {
	return syserr.Unsupported("poketext", unsupportedKind)
}

func pokeData(pid int, addr int64, word int64) error {
	return syserr.Unsupported("pokedata", unsupportedKind)
}
