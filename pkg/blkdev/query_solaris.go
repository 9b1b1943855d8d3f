//go:build cgo

package blkdev

/*
#include <sys/types.h>
#include <sys/ioctl.h>
#include <sys/dkio.h>
#include <errno.h>

static int get_media_info(int fd, unsigned int *lbsize, unsigned long long *capacity)
{
	struct dk_minfo dm;

	if (ioctl(fd, DKIOCGMEDIAINFO, &dm) == -1)
		return errno;
	*lbsize = dm.dki_lbsize;
	*capacity = dm.dki_capacity;
	return 0;
}
*/
import "C"

import (
	"golang.org/x/sys/unix"

	"github.com/kusumi/fileobj/pkg/syserr"
)

const platform = "illumos"

var capabilities = Capabilities{Query: true}

const charDisks = true

func query(path string) (Info, error) {
	fd, err := openDevice(path)
	if err != nil {
		return Info{}, err
	}
	defer unix.Close(fd)

	var lbsize C.uint
	var capacity C.ulonglong
	if rc := C.get_media_info(C.int(fd), &lbsize, &capacity); rc != 0 {
		return Info{}, syserr.FromErrno("DKIOCGMEDIAINFO", syserr.ErrIoctl, syserr.Errno(rc))
	}
	return Info{Size: uint64(capacity) * uint64(lbsize), SectorSize: int32(lbsize)}, nil
}
