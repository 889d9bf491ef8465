package storage

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/data-respons-solutions/nvram/internal/core/domain"
)

// DefaultEFIDir is the usual efivarfs mount point.
const DefaultEFIDir = "/sys/firmware/efi/efivars"

// EFI variable attributes stored in front of the payload by efivarfs.
const (
	efiNonVolatile       = 0x1
	efiBootServiceAccess = 0x2
	efiRuntimeAccess     = 0x4

	efiAttributes  = efiNonVolatile | efiBootServiceAccess | efiRuntimeAccess
	efiAttrSize    = 4
	efiGUIDTextLen = 36
)

// EFIBackend stores each section in a UEFI variable through efivarfs. The
// section identifier is the efivarfs file name "<Name>-<VendorGUID>".
type EFIBackend struct {
	dir    string
	logger *slog.Logger
}

// NewEFIBackend creates an efi backend rooted at the efivarfs mount dir.
func NewEFIBackend(dir string, logger *slog.Logger) *EFIBackend {
	if dir == "" {
		dir = DefaultEFIDir
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &EFIBackend{dir: dir, logger: logger}
}

// ParseVariable splits an efivarfs file name into variable name and vendor GUID.
// Names containing a path separator are rejected so the variable stays
// inside the efivarfs directory.
func ParseVariable(section string) (string, uuid.UUID, error) {
	if len(section) < efiGUIDTextLen+2 || section[len(section)-efiGUIDTextLen-1] != '-' {
		return "", uuid.Nil, domain.ErrInvalidArgument.WithDetails("efi variable %q: want <Name>-<GUID>", section)
	}
	name := section[:len(section)-efiGUIDTextLen-1]
	if strings.ContainsAny(name, "/\\\x00") {
		return "", uuid.Nil, domain.ErrInvalidArgument.WithDetails("efi variable %q: name contains a path separator", section)
	}
	guid, err := uuid.Parse(section[len(section)-efiGUIDTextLen:])
	if err != nil {
		return "", uuid.Nil, domain.ErrInvalidArgument.WithDetails("efi variable %q", section).WithCause(err)
	}
	return name, guid, nil
}

// Open implements Backend.
func (b *EFIBackend) Open(section string) (Handle, error) {
	if section == "" {
		return nil, errEmptySection
	}
	name, guid, err := ParseVariable(section)
	if err != nil {
		return nil, err
	}
	return &efiHandle{
		path:   filepath.Join(b.dir, name+"-"+guid.String()),
		name:   section,
		logger: b.logger,
	}, nil
}

// Kind implements Backend.
func (b *EFIBackend) Kind() Kind { return KindEFI }

// Close implements Backend.
func (b *EFIBackend) Close() error { return nil }

type efiHandle struct {
	path   string
	name   string
	logger *slog.Logger
}

func (h *efiHandle) Size() (int, error) {
	fi, err := os.Stat(h.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, ioError(h.name, "stat", err)
	}
	// efivarfs reports the attribute word as part of the file size.
	if fi.Size() < efiAttrSize {
		return 0, ioError(h.name, "stat", fmt.Errorf("variable is %d bytes, shorter than its attributes", fi.Size()))
	}
	return int(fi.Size()) - efiAttrSize, nil
}

func (h *efiHandle) Read(p []byte) error {
	data, err := os.ReadFile(h.path)
	if err != nil {
		return ioError(h.name, "read", err)
	}
	if len(data) < efiAttrSize {
		return ioError(h.name, "read", fmt.Errorf("variable is %d bytes, shorter than its attributes", len(data)))
	}
	if len(data)-efiAttrSize != len(p) {
		return sizeMismatch(h.name, len(data)-efiAttrSize, len(p))
	}
	copy(p, data[efiAttrSize:])
	return nil
}

// Write sets the variable with one write(2) of attributes followed by the
// payload, which is what efivarfs requires.
func (h *efiHandle) Write(p []byte) error {
	buf := make([]byte, efiAttrSize+len(p))
	binary.LittleEndian.PutUint32(buf, efiAttributes)
	copy(buf[efiAttrSize:], p)

	flags := os.O_WRONLY | os.O_CREATE
	if _, err := os.Stat(h.path); err == nil {
		if err := clearImmutable(h.path); err != nil {
			return ioError(h.name, "clear immutable", err)
		}
	}
	// efivarfs replaces the variable on every write and does not support
	// truncation; any other filesystem needs O_TRUNC.
	if !isEFIVarFS(filepath.Dir(h.path)) {
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(h.path, flags, 0o644)
	if err != nil {
		return ioError(h.name, "open", err)
	}
	if _, err := f.Write(buf); err != nil {
		f.Close()
		return ioError(h.name, "write", err)
	}
	if err := f.Close(); err != nil {
		return ioError(h.name, "close", err)
	}

	h.logger.Debug("efi variable written", "section", h.name, "bytes", len(p))
	return nil
}

func (h *efiHandle) Section() string { return h.name }

func (h *efiHandle) Close() error { return nil }
