package storage

import (
	"github.com/data-respons-solutions/nvram/internal/telemetry/metric"
)

// Instrument wraps b so that every handle operation is recorded in m.
// It returns b unchanged when m is nil.
func Instrument(b Backend, m *metric.Registry) Backend {
	if m == nil {
		return b
	}
	return &instrumentedBackend{Backend: b, metrics: m}
}

type instrumentedBackend struct {
	Backend
	metrics *metric.Registry
}

func (b *instrumentedBackend) Open(section string) (Handle, error) {
	h, err := b.Backend.Open(section)
	b.metrics.ObserveStorage(b.Kind().String(), "open", 0, err)
	if err != nil {
		return nil, err
	}
	return &instrumentedHandle{Handle: h, backend: b.Kind().String(), metrics: b.metrics}, nil
}

type instrumentedHandle struct {
	Handle
	backend string
	metrics *metric.Registry
}

func (h *instrumentedHandle) Size() (int, error) {
	n, err := h.Handle.Size()
	h.metrics.ObserveStorage(h.backend, "size", 0, err)
	return n, err
}

func (h *instrumentedHandle) Read(p []byte) error {
	err := h.Handle.Read(p)
	h.metrics.ObserveStorage(h.backend, "read", len(p), err)
	return err
}

func (h *instrumentedHandle) Write(p []byte) error {
	err := h.Handle.Write(p)
	h.metrics.ObserveStorage(h.backend, "write", len(p), err)
	return err
}
