package blkdev

// BSD style ioctl request encoding, <sys/ioccom.h>.
const (
	iocParmMask = 0x1fff
	iocOut      = 0x40000000
)

// ior is _IOR(group, num, size).
func ior(group byte, num uintptr, size uintptr) uintptr {
	return iocOut | (size&iocParmMask)<<16 | uintptr(group)<<8 | num
}
