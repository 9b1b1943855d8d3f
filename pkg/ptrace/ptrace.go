// Package ptrace issues process trace requests against a live process.
//
// Every function is a single, synchronous kernel request. The package keeps
// no state between calls and does not check that a process is attached
// before it is peeked or poked: if it is not, the kernel request fails and
// that failure is returned as is.
//
// On Linux the tracer of a process is a thread, not a process. Callers must
// issue every request for a given tracee from the OS thread that attached
// to it, see runtime.LockOSThread.
package ptrace

import (
	"encoding/binary"
	"strconv"

	"github.com/kusumi/fileobj/pkg/logflags"
)

// Width is the size in bytes of the unit transferred by one peek or poke
// request.
type Width int

const (
	// WordUnsupported means the target has no word level access.
	WordUnsupported Width = -1
	Word32          Width = 4
	Word64          Width = 8
)

// Supported reports whether w is a usable transfer size.
func (w Width) Supported() bool {
	return w == Word32 || w == Word64
}

func (w Width) String() string {
	if !w.Supported() {
		return "unsupported"
	}
	return strconv.Itoa(int(w))
}

// Word is a machine word read from a tracee. It is only meaningful when
// returned with a nil error; any value, including -1, is then valid.
type Word struct {
	Value int64
	Size  Width
}

// Bytes returns the word as it is laid out in the tracee's memory, in host
// byte order. It returns nil for an unsupported size.
func (w Word) Bytes() []byte {
	switch w.Size {
	case Word32:
		b := make([]byte, 4)
		binary.NativeEndian.PutUint32(b, uint32(w.Value))
		return b
	case Word64:
		b := make([]byte, 8)
		binary.NativeEndian.PutUint64(b, uint64(w.Value))
		return b
	}
	return nil
}

// Uint64 returns the word zero-extended from its size.
func (w Word) Uint64() uint64 {
	if w.Size == Word32 {
		return uint64(uint32(w.Value))
	}
	return uint64(w.Value)
}

// Capabilities describes which requests exist on the compiled-in target.
type Capabilities struct {
	// Control covers Attach, Detach, Cont and Kill.
	Control bool
	// WordAccess covers the Peek and Poke family and WordSize.
	WordAccess bool
}

// Attach attaches to the process pid.
func Attach(pid int) error {
	err := attach(pid)
	logRequest("attach", pid, err)
	return err
}

// Detach detaches from the process pid and lets it run.
func Detach(pid int) error {
	err := detach(pid)
	logRequest("detach", pid, err)
	return err
}

// Cont resumes the stopped process pid where it stopped.
func Cont(pid int) error {
	err := cont(pid)
	logRequest("cont", pid, err)
	return err
}

// Kill terminates the traced process pid.
func Kill(pid int) error {
	err := kill(pid)
	logRequest("kill", pid, err)
	return err
}

// PeekText reads one word at addr in the text space of pid.
func PeekText(pid int, addr int64) (Word, error) {
	w, err := peekText(pid, addr)
	logWord("peektext", pid, addr, w, err)
	return w, err
}

// PeekData reads one word at addr in the data space of pid.
func PeekData(pid int, addr int64) (Word, error) {
	w, err := peekData(pid, addr)
	logWord("peekdata", pid, addr, w, err)
	return w, err
}

// PokeText writes one word at addr in the text space of pid. Only the low
// WordSize() bytes of word are written.
func PokeText(pid int, addr int64, word int64) error {
	err := pokeText(pid, addr, word)
	logWord("poketext", pid, addr, Word{Value: word, Size: wordSize}, err)
	return err
}

// PokeData writes one word at addr in the data space of pid. Only the low
// WordSize() bytes of word are written.
func PokeData(pid int, addr int64, word int64) error {
	err := pokeData(pid, addr, word)
	logWord("pokedata", pid, addr, Word{Value: word, Size: wordSize}, err)
	return err
}

// Peek is PeekText.
func Peek(pid int, addr int64) (Word, error) {
	return PeekText(pid, addr)
}

// Poke is PokeText.
func Poke(pid int, addr int64, word int64) error {
	return PokeText(pid, addr, word)
}

// WordSize returns the transfer size of the peek and poke requests.
func WordSize() Width {
	return wordSize
}

// Platform returns the name of the compiled-in implementation.
func Platform() string {
	return platform
}

// Caps returns the capabilities of the compiled-in implementation.
func Caps() Capabilities {
	return capabilities
}

func logRequest(op string, pid int, err error) {
	if !logflags.Ptrace() {
		return
	}
	logger := logflags.PtraceLogger().WithField("pid", pid)
	if err != nil {
		logger.WithError(err).Debug(op)
		return
	}
	logger.Debug(op)
}

func logWord(op string, pid int, addr int64, w Word, err error) {
	if !logflags.Ptrace() {
		return
	}
	logger := logflags.PtraceLogger().WithFields(logflags.Fields{"pid": pid, "addr": "0x" + strconv.FormatUint(uint64(addr), 16)})
	if err != nil {
		logger.WithError(err).Debug(op)
		return
	}
	logger.Debugf("%s %#x", op, w.Uint64())
}
