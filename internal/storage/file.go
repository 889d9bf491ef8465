package storage

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

const tmpSuffix = ".tmp"

// FileBackend stores each section in a regular file. The section identifier
// is the file path.
type FileBackend struct {
	logger *slog.Logger
}

// NewFileBackend creates a file backend.
func NewFileBackend(logger *slog.Logger) *FileBackend {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileBackend{logger: logger}
}

// Open implements Backend.
func (b *FileBackend) Open(section string) (Handle, error) {
	if section == "" {
		return nil, errEmptySection
	}
	return &fileHandle{path: section, logger: b.logger}, nil
}

// Kind implements Backend.
func (b *FileBackend) Kind() Kind { return KindFile }

// Close implements Backend.
func (b *FileBackend) Close() error { return nil }

type fileHandle struct {
	path   string
	logger *slog.Logger
}

func (h *fileHandle) Size() (int, error) {
	fi, err := os.Stat(h.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, ioError(h.path, "stat", err)
	}
	if !fi.Mode().IsRegular() {
		return 0, ioError(h.path, "stat", errors.New("not a regular file"))
	}
	return int(fi.Size()), nil
}

func (h *fileHandle) Read(p []byte) error {
	data, err := os.ReadFile(h.path)
	if err != nil {
		return ioError(h.path, "read", err)
	}
	if len(data) != len(p) {
		return sizeMismatch(h.path, len(data), len(p))
	}
	copy(p, data)
	return nil
}

// Write replaces the file through a synced temporary file and a rename, so
// a failed write leaves the previous content in place.
func (h *fileHandle) Write(p []byte) error {
	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return ioError(h.path, "mkdir", err)
	}

	tmp := h.path + tmpSuffix
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return ioError(h.path, "create", err)
	}
	if _, err := f.Write(p); err != nil {
		f.Close()
		os.Remove(tmp)
		return ioError(h.path, "write", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return ioError(h.path, "sync", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return ioError(h.path, "close", err)
	}
	if err := os.Rename(tmp, h.path); err != nil {
		os.Remove(tmp)
		return ioError(h.path, "rename", err)
	}

	h.logger.Debug("section written", "section", h.path, "bytes", len(p))
	return nil
}

func (h *fileHandle) Section() string { return h.path }

func (h *fileHandle) Close() error { return nil }
