package ptrace

import "testing"

func TestWord32(t *testing.T) {
	var hi uint64 = 0x180000000
	for _, tc := range []struct {
		r    uintptr
		want int64
	}{
		{0, 0},
		{0x7fffffff, 0x7fffffff},
		{0xffffffff, -1},
		{0x80000000, -2147483648},
		{uintptr(hi), -2147483648},
	} {
		w := word32(tc.r)
		if w.Value != tc.want || w.Size != Word32 {
			t.Fatalf("expected %d/%d for %#x; but was %d/%d", tc.want, Word32, tc.r, w.Value, w.Size)
		}
	}
}

func TestTruncate32(t *testing.T) {
	for _, tc := range []struct {
		word int64
		want int
	}{
		{1, 1},
		{-1, -1},
		{0x100000001, 1},
		{0xdeadbeef, -559038737},
		{-0x100000000, 0},
	} {
		if got := truncate32(tc.word); got != tc.want {
			t.Fatalf("expected %d for %#x; but was %d", tc.want, tc.word, got)
		}
	}
}

func TestWord32RoundTrip(t *testing.T) {
	w := word32(uintptr(uint32(truncate32(-2))))
	if w.Value != -2 || w.Uint64() != 0xfffffffe {
		t.Fatalf("expected -2 (0xfffffffe); but was %d (%#x)", w.Value, w.Uint64())
	}
}
