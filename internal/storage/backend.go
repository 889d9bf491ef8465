package storage

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/data-respons-solutions/nvram/internal/core/domain"
	"github.com/data-respons-solutions/nvram/internal/telemetry/metric"
)

// Backend opens sections on one kind of storage medium.
type Backend interface {
	// Open acquires a handle for the named section. Opening never creates
	// the section; a section that was never written reports size 0.
	Open(section string) (Handle, error)

	// Kind identifies the backend implementation.
	Kind() Kind

	// Close releases backend-wide resources. Handles must be closed first.
	Close() error
}

// Handle is the per-section state of a Backend.
type Handle interface {
	// Size returns the current content length in bytes.
	Size() (int, error)

	// Read fills p with the section content. It fails if len(p) does not
	// match the stored size.
	Read(p []byte) error

	// Write replaces the section content with p.
	Write(p []byte) error

	// Section returns a human-readable identifier for error messages.
	Section() string

	// Close releases the handle. Calling Close more than once is safe.
	Close() error
}

// Kind enumerates the backend implementations.
type Kind int

const (
	KindUnspecified Kind = iota
	KindFile
	KindMTD
	KindEFI
	KindBadger
)

var kindNames = map[Kind]string{
	KindFile:   "file",
	KindMTD:    "mtd",
	KindEFI:    "efi",
	KindBadger: "badger",
}

// String returns the configuration name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind resolves a backend name ("file", "mtd", "efi", "badger").
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return KindUnspecified, domain.ErrInvalidArgument.WithDetails("unknown interface %q", name)
}

// Kinds returns all backend kinds in declaration order.
func Kinds() []Kind {
	return []Kind{KindFile, KindMTD, KindEFI, KindBadger}
}

// Options configures backend construction.
type Options struct {
	// EFIDir is the efivarfs mount point. Default: DefaultEFIDir.
	EFIDir string

	// BadgerDir is the Badger database directory. Required for KindBadger.
	BadgerDir string

	// EraseSize is the erase block size used when an mtd section is a plain
	// image file instead of an MTD device. Default: DefaultEraseSize.
	EraseSize int

	// Logger is the structured logger.
	Logger *slog.Logger

	// Metrics records backend operations. Optional.
	Metrics *metric.Registry
}

// New creates the backend of the given kind.
func New(kind Kind, opts Options) (Backend, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	var (
		b   Backend
		err error
	)
	switch kind {
	case KindFile:
		b = NewFileBackend(opts.Logger)
	case KindMTD:
		b = NewMTDBackend(opts.EraseSize, opts.Logger)
	case KindEFI:
		b = NewEFIBackend(opts.EFIDir, opts.Logger)
	case KindBadger:
		b, err = NewBadgerBackend(opts.BadgerDir, opts.Logger)
	default:
		return nil, domain.ErrInvalidArgument.WithDetails("unsupported interface %s", kind)
	}
	if err != nil {
		return nil, err
	}

	return Instrument(b, opts.Metrics), nil
}

// ioError wraps a medium failure for the given section.
func ioError(section, op string, err error) error {
	return domain.ErrIO.WithDetails("%s: %s", section, op).WithCause(err)
}

// sizeMismatch reports a read whose buffer does not match the stored size.
func sizeMismatch(section string, want, got int) error {
	return domain.ErrIO.WithDetails("%s: read: buffer is %d bytes, section holds %d", section, got, want)
}

// errEmptySection is returned by Open for an empty section identifier.
var errEmptySection = domain.ErrInvalidArgument.WithDetails("empty section identifier")
