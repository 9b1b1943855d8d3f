package ptrace

import "github.com/kusumi/fileobj/pkg/syserr"

const platform = "dragonfly"

const (
	ptContinue = 7
	ptKill     = 8
	ptAttach   = 10
	ptDetach   = 11
)

const detachAddr = 0

// Process control only. Word transfers are not offered here.
var capabilities = Capabilities{Control: true}

const wordSize = WordUnsupported

func peekText(pid int, addr int64) (Word, error) {
	return Word{}, syserr.Unsupported("peektext", syserr.ErrStructurallyUnsupported)
}

func peekData(pid int, addr int64) (Word, error) {
	return Word{}, syserr.Unsupported("peekdata", syserr.ErrStructurallyUnsupported)
}

func pokeText(pid int, addr int64, word int64) error {
	return syserr.Unsupported("poketext", syserr.ErrStructurallyUnsupported)
}

func pokeData(pid int, addr int64, word int64) error {
	return syserr.Unsupported("pokedata", syserr.ErrStructurallyUnsupported)
}
