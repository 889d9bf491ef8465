package format

import (
	"fmt"
	"log/slog"

	"github.com/data-respons-solutions/nvram/internal/core/domain"
	"github.com/data-respons-solutions/nvram/internal/storage"
	"github.com/data-respons-solutions/nvram/internal/telemetry/metric"
)

// Legacy is the single-section "key=value\n" format.
type Legacy struct {
	maxSize int
	logger  *slog.Logger
	metrics *metric.Registry
}

// NewLegacy creates the legacy format.
func NewLegacy(opts Options) *Legacy {
	if opts.MaxSize <= 0 {
		opts.MaxSize = DefaultMaxSize
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Legacy{
		maxSize: opts.MaxSize,
		logger:  opts.Logger,
		metrics: opts.Metrics,
	}
}

// Kind implements Format.
func (f *Legacy) Kind() Kind { return KindLegacy }

// Open implements Format.
//
// The section is read and decoded only when it holds data; a section that
// was never written opens as an empty list.
func (f *Legacy) Open(backend storage.Backend, list *domain.List, sectionA, sectionB string) (*Session, error) {
	switch {
	case backend == nil:
		return nil, domain.ErrInvalidArgument.WithDetails("no storage backend")
	case list == nil:
		return nil, domain.ErrInvalidArgument.WithDetails("no entry list")
	case sectionA == "":
		return nil, domain.ErrInvalidArgument.WithDetails("empty section A")
	case sectionB != "":
		f.logger.Error("legacy format supports single (A) section only",
			"section_a", sectionA,
			"section_b", sectionB)
		return nil, domain.ErrInvalidArgument.WithDetails("legacy format does not support section B %q", sectionB)
	}

	h, err := backend.Open(sectionA)
	if err != nil {
		f.logger.Error("failed initializing section", "section", sectionA, "error", err)
		return nil, fmt.Errorf("format: open %s: %w", sectionA, err)
	}

	opened := false
	defer func() {
		if !opened {
			h.Close()
		}
	}()

	size, err := h.Size()
	if err != nil {
		f.logger.Error("failed checking size", "section", h.Section(), "error", err)
		return nil, fmt.Errorf("format: size %s: %w", h.Section(), err)
	}
	if size > f.maxSize {
		err := domain.ErrOutOfMemory.WithDetails("%s holds %d bytes, limit is %d", h.Section(), size, f.maxSize)
		f.logger.Error("failed allocating read buffer", "section", h.Section(), "error", err)
		return nil, err
	}

	if size > 0 {
		buf := make([]byte, size)
		if err := h.Read(buf); err != nil {
			f.logger.Error("failed reading", "section", h.Section(), "error", err)
			return nil, fmt.Errorf("format: read %s: %w", h.Section(), err)
		}
		if err := Decode(buf, list); err != nil {
			f.logger.Error("data corrupted", "section", h.Section(), "error", err)
			return nil, fmt.Errorf("format: decode %s: %w", h.Section(), err)
		}
	}

	f.logger.Debug("section opened", "section", h.Section(), "bytes", size, "entries", list.Len())
	f.metrics.SessionOpened()
	opened = true
	return &Session{
		handle:  h,
		encode:  f.encode,
		logger:  f.logger,
		metrics: f.metrics,
	}, nil
}

func (f *Legacy) encode(list *domain.List) ([]byte, error) {
	return encode(list, f.maxSize)
}
