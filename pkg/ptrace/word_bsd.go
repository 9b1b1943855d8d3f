//go:build darwin || freebsd || netbsd || openbsd

package ptrace

import "github.com/kusumi/fileobj/pkg/syserr"

var capabilities = Capabilities{Control: true, WordAccess: true}

// PT_READ_* and PT_WRITE_* move an int.
const wordSize = Word32

func peek(op string, request int, pid int, addr int64) (Word, error) {
	r, errno := ptrace(request, pid, uintptr(addr), 0)
	if errno != 0 {
		return Word{}, syserr.FromErrno(op, syserr.ErrTrace, errno)
	}
	return word32(r), nil
}

func poke(op string, request int, pid int, addr int64, word int64) error {
	_, errno := ptrace(request, pid, uintptr(addr), truncate32(word))
	return syserr.FromErrno(op, syserr.ErrTrace, errno)
}

func peekText(pid int, addr int64) (Word, error) {
	return peek("peektext", ptReadI, pid, addr)
}

func peekData(pid int, addr int64) (Word, error) {
	return peek("peekdata", ptReadD, pid, addr)
}

func pokeText(pid int, addr int64, word int64) error {
	return poke("poketext", ptWriteI, pid, addr, word)
}

func pokeData(pid int, addr int64, word int64) error {
	return poke("pokedata", ptWriteD, pid, addr, word)
}
