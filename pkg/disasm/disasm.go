// Package disasm decodes x86 instructions out of raw words read from a
// tracee.
package disasm

import (
	"encoding/hex"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/arch/x86/x86asm"
)

// AssemblyFlavour describes the output
// of disassembled code.
type AssemblyFlavour int

const (
	// IntelFlavour will disassemble using Intel assembly format.
	IntelFlavour AssemblyFlavour = iota
	// GNUFlavour will disassemble using GNU assembly format.
	GNUFlavour
	// GoFlavour will disassemble using Go assembly format.
	GoFlavour
)

// Inst is one decoded instruction.
type Inst struct {
	PC    uint64
	Bytes []byte
	// Valid is false when Bytes could not be decoded. Such an entry is
	// always one byte long.
	Valid bool

	inst x86asm.Inst
}

// ParseFlavour returns the flavour called name: "intel", "gnu" or "go".
func ParseFlavour(name string) (AssemblyFlavour, error) {
	switch strings.ToLower(name) {
	case "", "intel":
		return IntelFlavour, nil
	case "gnu":
		return GNUFlavour, nil
	case "go":
		return GoFlavour, nil
	}
	return IntelFlavour, fmt.Errorf("unknown assembly syntax %q, expected intel, gnu or go", name)
}

// HostMode returns the decoding mode of the host, 64 or 32, or 0 when the
// host is not x86.
func HostMode() int {
	switch runtime.GOARCH {
	case "amd64":
		return 64
	case "386":
		return 32
	}
	return 0
}

// Decode decodes b as a sequence of instructions of the given mode (16, 32
// or 64) starting at pc. Bytes that do not form an instruction produce one
// invalid entry each. A trailing instruction cut short by the end of b is
// reported as invalid as well.
func Decode(b []byte, mode int, pc uint64) []Inst {
	var r []Inst
	for len(b) > 0 {
		inst, err := x86asm.Decode(b, mode)
		// A lone prefix decodes without error but with no opcode.
		if err != nil || inst.Op == 0 {
			r = append(r, Inst{PC: pc, Bytes: b[:1]})
			b = b[1:]
			pc++
			continue
		}
		patchPCRel(pc, &inst)
		r = append(r, Inst{PC: pc, Bytes: b[:inst.Len], Valid: true, inst: inst})
		b = b[inst.Len:]
		pc += uint64(inst.Len)
	}
	return r
}

// converts PC relative arguments to absolute addresses
func patchPCRel(pc uint64, inst *x86asm.Inst) {
	for i := range inst.Args {
		rel, isrel := inst.Args[i].(x86asm.Rel)
		if isrel {
			inst.Args[i] = x86asm.Imm(int64(pc) + int64(rel) + int64(inst.Len))
		}
	}
}

// Text returns the instruction in the given syntax, "?" if it is invalid.
func (i Inst) Text(flavour AssemblyFlavour) string {
	if !i.Valid {
		return "?"
	}
	switch flavour {
	case GNUFlavour:
		return x86asm.GNUSyntax(i.inst, i.PC, nil)
	case GoFlavour:
		return x86asm.GoSyntax(i.inst, i.PC, nil)
	default:
		return x86asm.IntelSyntax(i.inst, i.PC, nil)
	}
}

// Hex returns the instruction bytes in hexadecimal.
func (i Inst) Hex() string {
	return hex.EncodeToString(i.Bytes)
}
