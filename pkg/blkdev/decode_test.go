package blkdev

import (
	"encoding/binary"
	"strings"
	"testing"
)

func TestSectorCountInfo(t *testing.T) {
	info := sectorCountInfo(1000, 512)
	if info.Size != 512000 || info.SectorSize != 512 || info.Label != "" {
		t.Fatalf("expected {512000 512 \"\"}; but was %+v", info)
	}
	// BLKGETSIZE is in 512 byte units even on 4K native devices.
	info = sectorCountInfo(1000, 4096)
	if info.Size != 512000 || info.SectorSize != 4096 {
		t.Fatalf("expected {512000 4096}; but was %+v", info)
	}
}

func disklabel(typename string, secsize, secperunit uint32) []byte {
	b := make([]byte, disklabelSize)
	copy(b[8:24], typename)
	binary.NativeEndian.PutUint32(b[40:44], secsize)
	binary.NativeEndian.PutUint32(b[60:64], secperunit)
	return b
}

func TestDecodeDisklabel(t *testing.T) {
	tests := []struct {
		typename string
		label    string
	}{
		{"SCSI    ", "SCSI"},
		{"ESDI", "ESDI"},
		{"", ""},
		{"    ", ""},
		{"my disk  ", "my disk"},
		{"0123456789abcdef", "0123456789abcdef"},
	}
	for _, tc := range tests {
		info, err := decodeDisklabel(disklabel(tc.typename, 512, 2048))
		if err != nil {
			t.Fatal(err)
		}
		if info.Label != tc.label {
			t.Fatalf("expected label %q for %q; but was %q", tc.label, tc.typename, info.Label)
		}
		if info.Size != 512*2048 || info.SectorSize != 512 {
			t.Fatalf("unexpected geometry %+v", info)
		}
	}
}

func TestDecodeShortBuffer(t *testing.T) {
	if _, err := decodeDisklabel(make([]byte, 63)); err != errShortBuffer {
		t.Fatalf("expected <%v>; but was <%v>", errShortBuffer, err)
	}
	if _, err := decodePartinfo(make([]byte, 27)); err != errShortBuffer {
		t.Fatalf("expected <%v>; but was <%v>", errShortBuffer, err)
	}
}

func TestDecodePartinfo(t *testing.T) {
	b := make([]byte, partinfoSize)
	binary.NativeEndian.PutUint64(b[0:8], 63*512)
	binary.NativeEndian.PutUint64(b[8:16], 1<<33)
	binary.NativeEndian.PutUint64(b[16:24], (1<<33)/4096)
	binary.NativeEndian.PutUint32(b[24:28], 4096)
	info, err := decodePartinfo(b)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size != 1<<33 || info.SectorSize != 4096 || info.Label != "" {
		t.Fatalf("unexpected geometry %+v", info)
	}
}

func TestTrimLabel(t *testing.T) {
	long := strings.Repeat("x", 80) + "  "
	if got := trimLabel(long); len(got) != MaxLabelLen {
		t.Fatalf("expected %d bytes; but was %d", MaxLabelLen, len(got))
	}
	if got := trimLabel("a b  "); got != "a b" {
		t.Fatalf("expected %q; but was %q", "a b", got)
	}
	if got := trimLabel(" "); got != "" {
		t.Fatalf("expected empty label; but was %q", got)
	}
}

func TestIoctlNumbers(t *testing.T) {
	tests := []struct {
		name string
		got  uintptr
		want uintptr
	}{
		{"DIOCGSECTORSIZE", ior('d', 128, 4), 0x40046480},
		{"DIOCGMEDIASIZE", ior('d', 129, 8), 0x40086481},
		{"DKIOCGETBLOCKSIZE", ior('d', 24, 4), 0x40046418},
		{"DKIOCGETBLOCKCOUNT", ior('d', 25, 8), 0x40086419},
	}
	if ptrSize == 8 {
		tests = append(tests,
			struct {
				name string
				got  uintptr
				want uintptr
			}{"DIOCGDINFO", ior('d', 101, disklabelSize), 0x41986465},
			struct {
				name string
				got  uintptr
				want uintptr
			}{"DIOCGPART", ior('d', 104, partinfoSize), 0x40906468})
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Fatalf("%s: expected %#x; but was %#x", tc.name, tc.want, tc.got)
		}
	}
}
