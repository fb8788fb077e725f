package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeCreated       = "created"
	OutcomeRejected      = "rejected"
	OutcomeRemoteFailed  = "remote_failed"
	OutcomeStoreFailed   = "store_failed"
	OutcomeNotConfigured = "not_configured"
)

// UploadMetrics records upload outcomes and time spent in the media service.
type UploadMetrics struct {
	uploads *prometheus.CounterVec
	remote  *prometheus.HistogramVec
}

// NewUploadMetrics registers the upload metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewUploadMetrics(reg prometheus.Registerer) *UploadMetrics {
	if reg == nil {
		return &UploadMetrics{}
	}
	uploads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "media_uploads_total",
		Help: "Media upload requests by kind and outcome.",
	}, []string{"kind", "outcome"})
	remote := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "media_remote_upload_seconds",
		Help:    "Time spent waiting for the media service to accept an upload.",
		Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"kind"})
	reg.MustRegister(uploads, remote)
	return &UploadMetrics{uploads: uploads, remote: remote}
}

// Observe increments the counter for kind/outcome.
func (m *UploadMetrics) Observe(kind, outcome string) {
	if m == nil || m.uploads == nil {
		return
	}
	m.uploads.WithLabelValues(normalizeLabel(kind), normalizeLabel(outcome)).Inc()
}

// ObserveRemote records how long the remote upload took.
func (m *UploadMetrics) ObserveRemote(kind string, d time.Duration) {
	if m == nil || m.remote == nil {
		return
	}
	m.remote.WithLabelValues(normalizeLabel(kind)).Observe(d.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
