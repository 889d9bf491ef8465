package format

import (
	"fmt"
	"log/slog"

	"github.com/data-respons-solutions/nvram/internal/core/domain"
	"github.com/data-respons-solutions/nvram/internal/storage"
	"github.com/data-respons-solutions/nvram/internal/telemetry/metric"
)

// Session is an open section: one storage handle plus the codec that writes
// it. A Session is not safe for concurrent use.
type Session struct {
	handle  storage.Handle
	encode  func(*domain.List) ([]byte, error)
	logger  *slog.Logger
	metrics *metric.Registry
}

// Section returns the identifier of the open section.
func (s *Session) Section() string {
	if s == nil || s.handle == nil {
		return ""
	}
	return s.handle.Section()
}

// Commit encodes list and writes it to the section. Neither the session nor
// list is modified, so a failed commit can be retried.
func (s *Session) Commit(list *domain.List) error {
	if s == nil || s.handle == nil {
		return domain.ErrInvalidArgument.WithDetails("commit on closed session")
	}
	if list == nil {
		return domain.ErrInvalidArgument.WithDetails("no entry list")
	}

	buf, err := s.encode(list)
	if err != nil {
		s.logger.Error("failed encoding", "section", s.Section(), "error", err)
		return fmt.Errorf("format: encode %s: %w", s.Section(), err)
	}
	if err := s.handle.Write(buf); err != nil {
		s.logger.Error("failed writing", "section", s.Section(), "error", err)
		return fmt.Errorf("format: write %s: %w", s.Section(), err)
	}

	s.logger.Debug("section committed", "section", s.Section(), "bytes", len(buf), "entries", list.Len())
	return nil
}

// Close releases the storage handle. Closing a closed or nil session is a
// no-op.
func (s *Session) Close() error {
	if s == nil || s.handle == nil {
		return nil
	}
	h := s.handle
	s.handle = nil
	s.metrics.SessionClosed()

	if err := h.Close(); err != nil {
		return fmt.Errorf("format: close %s: %w", h.Section(), err)
	}
	return nil
}
