//go:build linux

package storage

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// ioctl request numbers from <mtd/mtd-abi.h>.
const (
	memGetInfo = 0x80204d01 // _IOR('M', 1, struct mtd_info_user)
	memErase   = 0x40084d02 // _IOW('M', 2, struct erase_info_user)
)

// mtdInfoUser mirrors struct mtd_info_user.
type mtdInfoUser struct {
	Type      uint8
	_         [3]byte
	Flags     uint32
	Size      uint32
	EraseSize uint32
	WriteSize uint32
	OOBSize   uint32
	Padding   uint64
}

// eraseInfoUser mirrors struct erase_info_user.
type eraseInfoUser struct {
	Start  uint32
	Length uint32
}

func mtdGeometry(f *os.File) (size, eraseSize int, err error) {
	var info mtdInfoUser
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), memGetInfo, uintptr(unsafe.Pointer(&info)))
	switch errno {
	case 0:
		return int(info.Size), int(info.EraseSize), nil
	case unix.ENOTTY, unix.EINVAL:
		return 0, 0, errNotMTD
	default:
		return 0, 0, errno
	}
}

func mtdErase(f *os.File, start, length int) error {
	info := eraseInfoUser{Start: uint32(start), Length: uint32(length)}
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), memErase, uintptr(unsafe.Pointer(&info)))
	if errno != 0 {
		return errno
	}
	return nil
}
