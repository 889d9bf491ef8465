package storage

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v3"
)

// BadgerBackend stores each section as one key in a Badger database. The
// section identifier is the key. It emulates raw storage on development
// hosts and in CI.
type BadgerBackend struct {
	db     *badger.DB
	dir    string
	logger *slog.Logger
}

// NewBadgerBackend opens (or creates) the Badger database in dir.
func NewBadgerBackend(dir string, logger *slog.Logger) (*BadgerBackend, error) {
	if dir == "" {
		return nil, fmt.Errorf("badger: dir is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = &badgerLogger{logger: logger}
	// Sections are tiny and rewritten whole; keep the footprint small and
	// make every commit durable.
	opts.SyncWrites = true
	opts.NumVersionsToKeep = 1
	opts.ValueLogFileSize = 16 << 20
	opts.MemTableSize = 8 << 20

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger: open db: %w", err)
	}

	logger.Debug("badger backend opened", "dir", dir)
	return &BadgerBackend{db: db, dir: dir, logger: logger}, nil
}

// Open implements Backend.
func (b *BadgerBackend) Open(section string) (Handle, error) {
	if section == "" {
		return nil, errEmptySection
	}
	if b.db == nil {
		return nil, ioError(section, "open", errBackendClosed)
	}
	return &badgerHandle{backend: b, key: []byte(section)}, nil
}

// Kind implements Backend.
func (b *BadgerBackend) Kind() Kind { return KindBadger }

// Close closes the database.
func (b *BadgerBackend) Close() error {
	if b.db == nil {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	if err != nil {
		return fmt.Errorf("badger: close: %w", err)
	}
	return nil
}

var errBackendClosed = errors.New("backend closed")

type badgerHandle struct {
	backend *BadgerBackend
	key     []byte
}

func (h *badgerHandle) db() (*badger.DB, error) {
	if h.backend.db == nil {
		return nil, errBackendClosed
	}
	return h.backend.db, nil
}

func (h *badgerHandle) Size() (int, error) {
	db, err := h.db()
	if err != nil {
		return 0, ioError(h.Section(), "size", err)
	}

	var size int
	err = db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(h.key)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		// ValueSize is only an estimate for values kept in the value log.
		return item.Value(func(val []byte) error {
			size = len(val)
			return nil
		})
	})
	if err != nil {
		return 0, ioError(h.Section(), "size", err)
	}
	return size, nil
}

func (h *badgerHandle) Read(p []byte) error {
	db, err := h.db()
	if err != nil {
		return ioError(h.Section(), "read", err)
	}

	var value []byte
	err = db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(h.key)
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return ioError(h.Section(), "read", err)
	}
	if len(value) != len(p) {
		return sizeMismatch(h.Section(), len(value), len(p))
	}
	copy(p, value)
	return nil
}

func (h *badgerHandle) Write(p []byte) error {
	db, err := h.db()
	if err != nil {
		return ioError(h.Section(), "write", err)
	}

	// Badger keeps a reference to the value until the transaction commits.
	value := make([]byte, len(p))
	copy(value, p)
	err = db.Update(func(txn *badger.Txn) error {
		return txn.Set(h.key, value)
	})
	if err != nil {
		return ioError(h.Section(), "write", err)
	}
	return nil
}

func (h *badgerHandle) Section() string { return string(h.key) }

func (h *badgerHandle) Close() error { return nil }

// badgerLogger adapts slog.Logger to Badger's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
