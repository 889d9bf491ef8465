//go:build linux

package storage

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

const (
	efivarfsMagic  = 0xde5e81e4
	fsImmutableFlg = 0x00000010 // FS_IMMUTABLE_FL
)

// clearImmutable drops the immutable inode flag efivarfs sets on variables.
// Filesystems without inode flags are left alone.
func clearImmutable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fd := int(f.Fd())
	flags, err := unix.IoctlGetUint32(fd, unix.FS_IOC_GETFLAGS)
	if err != nil {
		if errors.Is(err, unix.ENOTTY) || errors.Is(err, unix.EOPNOTSUPP) || errors.Is(err, unix.EINVAL) {
			return nil
		}
		return err
	}
	if flags&fsImmutableFlg == 0 {
		return nil
	}
	return unix.IoctlSetPointerInt(fd, unix.FS_IOC_SETFLAGS, int(flags&^fsImmutableFlg))
}

func isEFIVarFS(dir string) bool {
	var st unix.Statfs_t
	if err := unix.Statfs(dir, &st); err != nil {
		return false
	}
	return uint32(st.Type) == efivarfsMagic
}
