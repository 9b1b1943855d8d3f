// Package native bundles the block device and process trace layers behind
// two small interfaces so that front ends can be driven by fakes in tests.
package native

import (
	"github.com/kusumi/fileobj/pkg/blkdev"
	"github.com/kusumi/fileobj/pkg/ptrace"
)

// Prober queries block device geometry.
type Prober interface {
	Query(path string) (blkdev.Info, error)
	IsBlockDevice(path string) (bool, error)
}

// Tracer issues process trace requests.
type Tracer interface {
	Attach(pid int) error
	Detach(pid int) error
	Cont(pid int) error
	Kill(pid int) error
	PeekText(pid int, addr int64) (ptrace.Word, error)
	PeekData(pid int, addr int64) (ptrace.Word, error)
	PokeText(pid int, addr int64, word int64) error
	PokeData(pid int, addr int64, word int64) error
	WordSize() ptrace.Width
}

// Host is the compiled-in implementation of both interfaces.
type Host struct{}

var (
	_ Prober = Host{}
	_ Tracer = Host{}
)

func (Host) Query(path string) (blkdev.Info, error)  { return blkdev.Query(path) }
func (Host) IsBlockDevice(path string) (bool, error) { return blkdev.IsBlockDevice(path) }

func (Host) Attach(pid int) error { return ptrace.Attach(pid) }
func (Host) Detach(pid int) error { return ptrace.Detach(pid) }
func (Host) Cont(pid int) error   { return ptrace.Cont(pid) }
func (Host) Kill(pid int) error   { return ptrace.Kill(pid) }

func (Host) PeekText(pid int, addr int64) (ptrace.Word, error) { return ptrace.PeekText(pid, addr) }
func (Host) PeekData(pid int, addr int64) (ptrace.Word, error) { return ptrace.PeekData(pid, addr) }

func (Host) PokeText(pid int, addr int64, word int64) error { return ptrace.PokeText(pid, addr, word) }
func (Host) PokeData(pid int, addr int64, word int64) error { return ptrace.PokeData(pid, addr, word) }

func (Host) WordSize() ptrace.Width { return ptrace.WordSize() }

// Description summarizes the compiled-in implementations.
type Description struct {
	Platform    string
	BlockDevice blkdev.Capabilities
	Trace       ptrace.Capabilities
	WordSize    ptrace.Width
}

// Describe returns the Description of this build.
func Describe() Description {
	return Description{
		Platform:    blkdev.Platform(),
		BlockDevice: blkdev.Caps(),
		Trace:       ptrace.Caps(),
		WordSize:    ptrace.WordSize(),
	}
}
