package storage

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// DefaultEraseSize is the erase block size assumed for flash image files.
const DefaultEraseSize = 4096

// erasedByte is the value of erased NOR/NAND flash.
const erasedByte = 0xFF

// errNotMTD is returned by mtdGeometry when the file is not an MTD device.
var errNotMTD = errors.New("not an mtd device")

// MTDBackend stores each section in a raw flash partition. The section
// identifier is the MTD character device, e.g. /dev/mtd3.
//
// Flash has no length field: the content runs up to the first erased byte
// or to the end of the partition. A plain file is accepted as a flash image
// and erase is emulated by writing 0xFF.
type MTDBackend struct {
	eraseSize int
	logger    *slog.Logger
}

// NewMTDBackend creates an mtd backend. eraseSize applies to image files only.
func NewMTDBackend(eraseSize int, logger *slog.Logger) *MTDBackend {
	if eraseSize <= 0 {
		eraseSize = DefaultEraseSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MTDBackend{eraseSize: eraseSize, logger: logger}
}

// Open implements Backend.
func (b *MTDBackend) Open(section string) (Handle, error) {
	if section == "" {
		return nil, errEmptySection
	}

	f, err := os.OpenFile(section, os.O_RDWR, 0)
	if err != nil {
		return nil, ioError(section, "open", err)
	}

	h := &mtdHandle{f: f, path: section, logger: b.logger}
	size, eraseSize, err := mtdGeometry(f)
	switch {
	case err == nil:
		h.size, h.eraseSize, h.device = size, eraseSize, true
	case errors.Is(err, errNotMTD):
		fi, serr := f.Stat()
		if serr != nil {
			f.Close()
			return nil, ioError(section, "stat", serr)
		}
		h.size, h.eraseSize = int(fi.Size()), b.eraseSize
	default:
		f.Close()
		return nil, ioError(section, "MEMGETINFO", err)
	}

	if h.eraseSize <= 0 || h.size <= 0 {
		f.Close()
		return nil, ioError(section, "geometry", fmt.Errorf("size %d, erase size %d", h.size, h.eraseSize))
	}

	b.logger.Debug("mtd section opened",
		"section", section,
		"device", h.device,
		"size", h.size,
		"erase_size", h.eraseSize)
	return h, nil
}

// Kind implements Backend.
func (b *MTDBackend) Kind() Kind { return KindMTD }

// Close implements Backend.
func (b *MTDBackend) Close() error { return nil }

type mtdHandle struct {
	f         *os.File
	path      string
	size      int // partition size
	eraseSize int
	device    bool
	logger    *slog.Logger
}

// contentLength scans the partition for the first erased byte.
func (h *mtdHandle) contentLength() (int, error) {
	buf := make([]byte, h.size)
	if _, err := h.f.ReadAt(buf, 0); err != nil {
		return 0, ioError(h.path, "read", err)
	}
	if i := bytes.IndexByte(buf, erasedByte); i >= 0 {
		return i, nil
	}
	return h.size, nil
}

func (h *mtdHandle) Size() (int, error) {
	if h.f == nil {
		return 0, ioError(h.path, "size", os.ErrClosed)
	}
	return h.contentLength()
}

func (h *mtdHandle) Read(p []byte) error {
	if h.f == nil {
		return ioError(h.path, "read", os.ErrClosed)
	}
	n, err := h.contentLength()
	if err != nil {
		return err
	}
	if n != len(p) {
		return sizeMismatch(h.path, n, len(p))
	}
	if _, err := h.f.ReadAt(p, 0); err != nil {
		return ioError(h.path, "read", err)
	}
	return nil
}

// Write erases the blocks covering the data plus one terminating erased
// byte, then programs the data from offset 0. Stale bytes beyond the erased
// range are unreachable because the content ends at the first erased byte.
func (h *mtdHandle) Write(p []byte) error {
	if h.f == nil {
		return ioError(h.path, "write", os.ErrClosed)
	}
	if len(p) > h.size {
		return ioError(h.path, "write", fmt.Errorf("%d bytes exceed partition size %d", len(p), h.size))
	}
	if bytes.IndexByte(p, erasedByte) >= 0 {
		return ioError(h.path, "write", errors.New("data contains the erased byte 0xff"))
	}

	span := min(len(p)+1, h.size)
	span = min((span+h.eraseSize-1)/h.eraseSize*h.eraseSize, h.size)
	if err := h.erase(span); err != nil {
		return err
	}
	if _, err := h.f.WriteAt(p, 0); err != nil {
		return ioError(h.path, "write", err)
	}
	if err := h.f.Sync(); err != nil {
		return ioError(h.path, "sync", err)
	}

	h.logger.Debug("mtd section written", "section", h.path, "bytes", len(p), "erased", span)
	return nil
}

func (h *mtdHandle) erase(length int) error {
	if h.device {
		if err := mtdErase(h.f, 0, length); err != nil {
			return ioError(h.path, "MEMERASE", err)
		}
		return nil
	}
	if _, err := h.f.WriteAt(bytes.Repeat([]byte{erasedByte}, length), 0); err != nil {
		return ioError(h.path, "erase", err)
	}
	return nil
}

func (h *mtdHandle) Section() string { return h.path }

func (h *mtdHandle) Close() error {
	if h.f == nil {
		return nil
	}
	err := h.f.Close()
	h.f = nil
	return err
}
