package format

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/data-respons-solutions/nvram/internal/core/domain"
	"github.com/data-respons-solutions/nvram/internal/storage"
	"github.com/data-respons-solutions/nvram/internal/telemetry/metric"
)

// DefaultMaxSize bounds the buffers a codec allocates for one section.
const DefaultMaxSize = 1 << 20

// Format is one on-disk encoding.
type Format interface {
	// Open reads sectionA through backend and decodes it into list.
	// sectionB names the redundancy slot; single-section formats require it
	// to be empty. On error no handle is left open.
	Open(backend storage.Backend, list *domain.List, sectionA, sectionB string) (*Session, error)

	// Kind identifies the format.
	Kind() Kind
}

// Kind enumerates the format implementations.
type Kind int

const (
	KindUnspecified Kind = iota
	KindLegacy
)

// String returns the configuration name of the kind.
func (k Kind) String() string {
	switch k {
	case KindLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind resolves a format name.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "legacy":
		return KindLegacy, nil
	default:
		return KindUnspecified, domain.ErrInvalidArgument.WithDetails("unknown format %q", name)
	}
}

// Options configures a format.
type Options struct {
	// MaxSize is the largest section, in bytes, the format reads or writes.
	// Default: DefaultMaxSize.
	MaxSize int

	// Logger is the structured logger.
	Logger *slog.Logger

	// Metrics tracks open sessions. Optional.
	Metrics *metric.Registry
}

// New creates the format of the given kind.
func New(kind Kind, opts Options) (Format, error) {
	switch kind {
	case KindLegacy:
		return NewLegacy(opts), nil
	default:
		return nil, domain.ErrInvalidArgument.WithDetails("unsupported format %s", kind)
	}
}
