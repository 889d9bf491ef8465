package service

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"

	"github.com/data-respons-solutions/nvram/internal/core/domain"
	"github.com/data-respons-solutions/nvram/internal/format"
	"github.com/data-respons-solutions/nvram/internal/storage"
	"github.com/data-respons-solutions/nvram/internal/telemetry/metric"
)

// Options configures a Store.
type Options struct {
	// Backend reads and writes sections. The Store does not close it.
	Backend storage.Backend

	// Format encodes sections.
	Format format.Format

	// Logger is the structured logger. Default: slog.Default().
	Logger *slog.Logger

	// Metrics records entry counts. Optional.
	Metrics *metric.Registry
}

// Section names the A and B slots of one role. B is empty for formats
// without redundancy.
type Section struct {
	A string
	B string
}

type section struct {
	session *format.Session
	list    *domain.List
	dirty   bool
}

// Store is the key/value view over the system and user sections.
type Store struct {
	opts     Options
	sections map[domain.Role]*section
}

// ============================================================================
// Open / Close
// ============================================================================

// Open opens the system and then the user section. If the user section
// fails the system section is closed again.
func Open(opts Options, system, user Section) (*Store, error) {
	return open(opts, map[domain.Role]Section{
		domain.RoleSystem: system,
		domain.RoleUser:   user,
	})
}

// OpenSection opens a single role. Operations on the other role fail with
// ErrInvalidArgument and its storage is never touched.
func OpenSection(opts Options, role domain.Role, sec Section) (*Store, error) {
	return open(opts, map[domain.Role]Section{role: sec})
}

func open(opts Options, secs map[domain.Role]Section) (*Store, error) {
	if opts.Backend == nil {
		return nil, domain.ErrInvalidArgument.WithDetails("no storage backend")
	}
	if opts.Format == nil {
		return nil, domain.ErrInvalidArgument.WithDetails("no format")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	s := &Store{
		opts:     opts,
		sections: make(map[domain.Role]*section, len(secs)),
	}
	for _, role := range domain.Roles() {
		sec, ok := secs[role]
		if !ok {
			continue
		}

		list := domain.NewList()
		session, err := opts.Format.Open(opts.Backend, list, sec.A, sec.B)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("service: open %s: %w", role, err)
		}
		s.sections[role] = &section{session: session, list: list}
		opts.Metrics.SetSectionEntries(role.String(), list.Len())
		opts.Logger.Debug("store section opened", "role", role.String(), "section", session.Section(), "entries", list.Len())
	}
	return s, nil
}

// Close closes every open section. Uncommitted changes are discarded.
// Closing a closed Store is a no-op.
func (s *Store) Close() error {
	if s == nil || s.sections == nil {
		return nil
	}

	var errs []error
	for _, role := range domain.Roles() {
		sec, ok := s.sections[role]
		if !ok {
			continue
		}
		if sec.dirty {
			s.opts.Logger.Warn("discarding uncommitted changes", "role", role.String())
		}
		if err := sec.session.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.sections = nil
	return errors.Join(errs...)
}

// ============================================================================
// Entry operations
// ============================================================================

// Get returns the value stored under key.
func (s *Store) Get(role domain.Role, key string) ([]byte, error) {
	sec, err := s.section(role)
	if err != nil {
		return nil, err
	}
	e, ok := sec.list.Get([]byte(key))
	if !ok {
		return nil, domain.ErrNotFound.WithDetails("%s", key)
	}
	return bytes.Clone(e.Value), nil
}

// Set stores value under key. Setting the current value leaves the role
// clean.
func (s *Store) Set(role domain.Role, key, value string) error {
	sec, err := s.section(role)
	if err != nil {
		return err
	}
	e := domain.NewEntry(key, value)
	if err := e.Validate(); err != nil {
		return err
	}

	if cur, ok := sec.list.Get(e.Key); ok && bytes.Equal(cur.Value, e.Value) {
		return nil
	}
	sec.list.Set(e)
	sec.dirty = true
	s.opts.Logger.Debug("entry set", "role", role.String(), "key", key, "value", value)
	return nil
}

// Delete removes key.
func (s *Store) Delete(role domain.Role, key string) error {
	sec, err := s.section(role)
	if err != nil {
		return err
	}
	if !sec.list.Delete([]byte(key)) {
		return domain.ErrNotFound.WithDetails("%s", key)
	}
	sec.dirty = true
	s.opts.Logger.Debug("entry deleted", "role", role.String(), "key", key)
	return nil
}

// List returns a copy of the entries of role in key order.
func (s *Store) List(role domain.Role) ([]domain.Entry, error) {
	sec, err := s.section(role)
	if err != nil {
		return nil, err
	}
	entries := sec.list.Entries()
	for i := range entries {
		entries[i] = entries[i].Clone()
	}
	return entries, nil
}

// Dirty reports whether role has uncommitted changes.
func (s *Store) Dirty(role domain.Role) bool {
	sec, err := s.section(role)
	return err == nil && sec.dirty
}

// Commit writes role to storage if it has changed since the last commit.
// On failure the changes stay pending and Commit may be retried.
func (s *Store) Commit(role domain.Role) error {
	sec, err := s.section(role)
	if err != nil {
		return err
	}
	if !sec.dirty {
		return nil
	}
	if err := sec.session.Commit(sec.list); err != nil {
		return fmt.Errorf("service: commit %s: %w", role, err)
	}
	sec.dirty = false
	s.opts.Metrics.SetSectionEntries(role.String(), sec.list.Len())
	s.opts.Logger.Info("section committed", "role", role.String(), "section", sec.session.Section(), "entries", sec.list.Len())
	return nil
}

func (s *Store) section(role domain.Role) (*section, error) {
	if s == nil || s.sections == nil {
		return nil, domain.ErrInvalidArgument.WithDetails("store is closed")
	}
	sec, ok := s.sections[role]
	if !ok {
		return nil, domain.ErrInvalidArgument.WithDetails("%s section is not open", role)
	}
	return sec, nil
}
