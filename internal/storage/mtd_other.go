//go:build !linux

package storage

import (
	"errors"
	"os"
)

func mtdGeometry(*os.File) (int, int, error) {
	return 0, 0, errNotMTD
}

func mtdErase(*os.File, int, int) error {
	return errors.New("mtd erase is only supported on linux")
}
