package cmds

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/kusumi/fileobj/pkg/blkdev"
	"github.com/kusumi/fileobj/pkg/disasm"
	"github.com/kusumi/fileobj/pkg/ptrace"
	"github.com/kusumi/fileobj/pkg/syserr"
)

type fakeBackend struct {
	devices map[string]blkdev.Info
	words   map[int64]int64
	calls   []string
}

func (f *fakeBackend) Query(path string) (blkdev.Info, error) {
	info, ok := f.devices[path]
	if !ok {
		return blkdev.Info{}, syserr.FromErrno("open", syserr.ErrDeviceOpen, 2)
	}
	return info, nil
}

func (f *fakeBackend) IsBlockDevice(path string) (bool, error) {
	_, ok := f.devices[path]
	return ok, nil
}

func (f *fakeBackend) record(name string, pid int) error {
	f.calls = append(f.calls, name)
	if pid == 1 {
		return syserr.FromErrno(name, syserr.ErrTrace, 1)
	}
	return nil
}

func (f *fakeBackend) Attach(pid int) error { return f.record("attach", pid) }
func (f *fakeBackend) Detach(pid int) error { return f.record("detach", pid) }
func (f *fakeBackend) Cont(pid int) error   { return f.record("cont", pid) }
func (f *fakeBackend) Kill(pid int) error   { return f.record("kill", pid) }

func (f *fakeBackend) PeekText(pid int, addr int64) (ptrace.Word, error) {
	v, ok := f.words[addr]
	if !ok {
		return ptrace.Word{}, syserr.FromErrno("peektext", syserr.ErrTrace, 5)
	}
	return ptrace.Word{Value: v, Size: ptrace.Word64}, nil
}

func (f *fakeBackend) PeekData(pid int, addr int64) (ptrace.Word, error) {
	f.calls = append(f.calls, "peekdata")
	return f.PeekText(pid, addr)
}

func (f *fakeBackend) PokeText(pid int, addr int64, word int64) error {
	f.calls = append(f.calls, "poketext")
	f.words[addr] = word
	return nil
}

func (f *fakeBackend) PokeData(pid int, addr int64, word int64) error {
	f.calls = append(f.calls, "pokedata")
	f.words[addr] = word
	return nil
}

func (f *fakeBackend) WordSize() ptrace.Width { return ptrace.Word64 }

func run(t *testing.T, fake *fakeBackend, args ...string) (string, string, error) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	saved := host
	host = fake
	defer func() { host = saved }()

	var stdout, stderr bytes.Buffer
	root := New()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func newFake() *fakeBackend {
	return &fakeBackend{
		devices: map[string]blkdev.Info{
			"/dev/sda": {Size: 1 << 30, SectorSize: 512},
			"/dev/wd0": {Size: 512000, SectorSize: 512, Label: "SCSI"},
		},
		words: map[int64]int64{0x1000: 0x0102030405060708},
	}
}

func TestBlkdev(t *testing.T) {
	out, _, err := run(t, newFake(), "blkdev", "/dev/sda", "/dev/wd0")
	if err != nil {
		t.Fatalf("blkdev: %v", err)
	}
	want := "/dev/sda: size=1073741824 (1.0 GiB) sector_size=512\n" +
		"/dev/wd0: size=512000 (500 KiB) sector_size=512 label=\"SCSI\"\n"
	if out != want {
		t.Fatalf("expected %q; but was %q", want, out)
	}
}

func TestBlkdevRefusesNonDevice(t *testing.T) {
	out, stderr, err := run(t, newFake(), "blkdev", "/etc/passwd", "/dev/sda")
	if err == nil {
		t.Fatalf("expected a failure")
	}
	if !strings.Contains(stderr, "/etc/passwd is not blkdev") {
		t.Fatalf("expected the refusal on stderr; but was %q", stderr)
	}
	if !strings.HasPrefix(out, "/dev/sda: ") {
		t.Fatalf("expected the remaining path to be queried; but was %q", out)
	}
}

func TestBlkdevForce(t *testing.T) {
	_, stderr, err := run(t, newFake(), "blkdev", "--force", "/etc/passwd")
	if err == nil || !strings.Contains(stderr, "cannot open device") {
		t.Fatalf("expected the query failure; but was %v %q", err, stderr)
	}
}

func TestControl(t *testing.T) {
	fake := newFake()
	for _, tc := range []struct{ cmd, want string }{
		{"attach", "attached to 42\n"},
		{"cont", "resumed 42\n"},
		{"kill", "killed 42\n"},
		{"detach", "detached from 42\n"},
	} {
		out, _, err := run(t, fake, tc.cmd, "42")
		if err != nil || out != tc.want {
			t.Fatalf("%s: expected %q; but was %q (%v)", tc.cmd, tc.want, out, err)
		}
	}
	if got := strings.Join(fake.calls, ","); got != "attach,cont,kill,detach" {
		t.Fatalf("unexpected calls %s", got)
	}
}

func TestControlFailure(t *testing.T) {
	_, _, err := run(t, newFake(), "attach", "1")
	if !errors.Is(err, syserr.ErrTrace) {
		t.Fatalf("expected ErrTrace; but was <%v>", err)
	}
	if _, _, err := run(t, newFake(), "attach", "nope"); err == nil || !strings.Contains(err.Error(), "invalid pid") {
		t.Fatalf("expected invalid pid; but was <%v>", err)
	}
}

func TestPeekPoke(t *testing.T) {
	fake := newFake()
	out, _, err := run(t, fake, "peek", "42", "0x1000")
	if err != nil || out != "0x0000000000001000: 0x0102030405060708\n" {
		t.Fatalf("unexpected peek output %q (%v)", out, err)
	}
	if _, _, err := run(t, fake, "poke", "--data", "--", "42", "0x1008", "-1"); err != nil {
		t.Fatalf("poke: %v", err)
	}
	out, _, err = run(t, fake, "peek", "-D", "-n", "2", "42", "0x1000")
	want := "0x0000000000001000: 0x0102030405060708\n0x0000000000001008: 0xffffffffffffffff\n"
	if err != nil || out != want {
		t.Fatalf("expected %q; but was %q (%v)", want, out, err)
	}
	if got := strings.Join(fake.calls, ","); got != "pokedata,peekdata,peekdata" {
		t.Fatalf("unexpected calls %s", got)
	}
}

func TestWordsizeAndPlatform(t *testing.T) {
	out, _, err := run(t, newFake(), "wordsize")
	if err != nil || out != "8\n" {
		t.Fatalf("expected 8; but was %q (%v)", out, err)
	}
	out, _, err = run(t, newFake(), "platform")
	if err != nil || !strings.HasPrefix(out, "platform:") || !strings.Contains(out, "word size:") {
		t.Fatalf("unexpected platform output %q (%v)", out, err)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, newFake(), "version")
	if err != nil || !strings.HasPrefix(out, "fonative\nVersion: ") {
		t.Fatalf("unexpected version output %q (%v)", out, err)
	}
}

func TestLogOutputWithoutLog(t *testing.T) {
	if _, _, err := run(t, newFake(), "--log-output=ptrace", "wordsize"); err == nil {
		t.Fatalf("expected --log-output without --log to fail")
	}
}

func TestPeekSyntax(t *testing.T) {
	if _, _, err := run(t, newFake(), "peek", "-d", "-s", "att", "42", "0x1000"); err == nil || !strings.Contains(err.Error(), "unknown assembly syntax") {
		t.Fatalf("expected an unknown syntax error; but was %v", err)
	}
	if disasm.HostMode() == 0 {
		t.Skip("not an x86 host")
	}
	fake := newFake()
	fake.words[0x1000] = 0x5590c3cc
	out, _, err := run(t, fake, "peek", "-d", "--syntax", "gnu", "42", "0x1000")
	if err != nil || !strings.Contains(out, "%rbp") {
		t.Fatalf("expected gnu syntax output; but was %q (%v)", out, err)
	}
}

func TestConfig(t *testing.T) {
	out, _, err := run(t, newFake(), "config", "peek-count", "5")
	if err != nil || !strings.Contains(out, "peek-count: 5\n") {
		t.Fatalf("expected the new peek-count; but was %q (%v)", out, err)
	}
	if _, _, err := run(t, newFake(), "config", "peek-count"); err == nil {
		t.Fatalf("expected a lone option to fail")
	}
	if _, _, err := run(t, newFake(), "config", "color", "on"); err == nil {
		t.Fatalf("expected an unknown option to fail")
	}
}

func TestConfigSaved(t *testing.T) {
	dir := t.TempDir()
	saved := host
	host = newFake()
	defer func() { host = saved }()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, args := range [][]string{{"config", "disassemble-flavor", "go"}, {"config"}} {
		var stdout bytes.Buffer
		root := New()
		root.SetOut(&stdout)
		root.SetErr(&stdout)
		root.SetArgs(args)
		if err := root.Execute(); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		if !strings.Contains(stdout.String(), "disassemble-flavor: go\n") {
			t.Fatalf("expected the saved flavour; but was %q", stdout.String())
		}
	}
}
