package terminal

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/kusumi/fileobj/pkg/disasm"
	"github.com/kusumi/fileobj/pkg/native"
	"github.com/kusumi/fileobj/pkg/ptrace"
)

var errNoDisasm = errors.New("disassembly requires an x86 host")

// ParseAddr parses a tracee address. Hexadecimal (0x), octal (0) and
// decimal forms are accepted. Addresses above the int64 range are taken
// as their two's complement.
func ParseAddr(s string) (int64, error) {
	if v, err := strconv.ParseInt(s, 0, 64); err == nil {
		return v, nil
	}
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q", s)
	}
	return int64(v), nil
}

// ParseWord parses a word value in the same forms as ParseAddr.
func ParseWord(s string) (int64, error) {
	v, err := ParseAddr(s)
	if err != nil {
		return 0, fmt.Errorf("invalid word %q", s)
	}
	return v, nil
}

// PeekWords reads count consecutive words starting at addr. It stops at
// the first failure and returns the words read so far with the error.
func PeekWords(tr native.Tracer, pid int, addr int64, count int, data bool) ([]ptrace.Word, error) {
	peek := tr.PeekText
	if data {
		peek = tr.PeekData
	}
	stride := int64(tr.WordSize())
	if !tr.WordSize().Supported() {
		count = 1
	}
	words := make([]ptrace.Word, 0, count)
	for i := 0; i < count; i++ {
		w, err := peek(pid, addr+int64(i)*stride)
		if err != nil {
			return words, err
		}
		words = append(words, w)
	}
	return words, nil
}

// PrintWords writes one line per word: its address and value.
func PrintWords(w io.Writer, addr int64, words []ptrace.Word) {
	for i, word := range words {
		fmt.Fprintf(w, "0x%016x: 0x%0*x\n", uint64(addr)+uint64(i)*uint64(word.Size), int(word.Size)*2, word.Uint64())
	}
}

// PrintDisasm decodes words as the host's x86 instructions and writes one
// line per instruction in the given syntax.
func PrintDisasm(w io.Writer, addr int64, words []ptrace.Word, flavour disasm.AssemblyFlavour) error {
	mode := disasm.HostMode()
	if mode == 0 {
		return errNoDisasm
	}
	var b []byte
	for _, word := range words {
		b = append(b, word.Bytes()...)
	}
	for _, inst := range disasm.Decode(b, mode, uint64(addr)) {
		fmt.Fprintf(w, "0x%016x:\t%-20s\t%s\n", inst.PC, inst.Hex(), inst.Text(flavour))
	}
	return nil
}
