package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "nvram"

// Result label values.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Registry holds all application metrics.
//
// A nil *Registry is valid and records nothing, so components can take an
// optional registry without nil checks at every call site.
type Registry struct {
	reg *prometheus.Registry

	// Storage metrics
	StorageOps   *prometheus.CounterVec
	StorageBytes *prometheus.CounterVec

	// Session metrics
	SessionsOpen   prometheus.Gauge
	SectionEntries *prometheus.GaugeVec
}

// NewRegistry creates a registry with all nvram metrics registered.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		StorageOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "operations_total",
			Help:      "Storage backend operations by backend, operation and result",
		}, []string{"backend", "op", "result"}),
		StorageBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "bytes_total",
			Help:      "Bytes transferred to or from storage",
		}, []string{"backend", "op"}),
		SessionsOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_open",
			Help:      "Format sessions currently holding a storage handle",
		}),
		SectionEntries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "section_entries",
			Help:      "Entries held by a section after the last open or commit",
		}, []string{"section"}),
	}

	r.reg.MustRegister(
		r.StorageOps,
		r.StorageBytes,
		r.SessionsOpen,
		r.SectionEntries,
	)
	return r
}

// ObserveStorage records one backend operation. n is the number of bytes
// moved and is ignored for failed operations.
func (r *Registry) ObserveStorage(backend, op string, n int, err error) {
	if r == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	r.StorageOps.WithLabelValues(backend, op, result).Inc()
	if err == nil && n > 0 {
		r.StorageBytes.WithLabelValues(backend, op).Add(float64(n))
	}
}

// SessionOpened increments the open session gauge.
func (r *Registry) SessionOpened() {
	if r == nil {
		return
	}
	r.SessionsOpen.Inc()
}

// SessionClosed decrements the open session gauge.
func (r *Registry) SessionClosed() {
	if r == nil {
		return
	}
	r.SessionsOpen.Dec()
}

// SetSectionEntries records the entry count of a section.
func (r *Registry) SetSectionEntries(section string, n int) {
	if r == nil {
		return
	}
	r.SectionEntries.WithLabelValues(section).Set(float64(n))
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
// The file is written atomically.
func (r *Registry) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.reg)
}
