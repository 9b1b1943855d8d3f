package ptrace

// word32 returns the int a 32 bit word request left in r, sign extended.
func word32(r uintptr) Word {
	return Word{Value: int64(int32(r)), Size: Word32}
}

// truncate32 returns the low 32 bits of word as the int a 32 bit word
// request writes.
func truncate32(word int64) int {
	return int(int32(word))
}
