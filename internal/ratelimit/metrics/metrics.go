package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts rate limit checks. A nil *Metrics records nothing.
type Metrics struct {
	Checks   *prometheus.CounterVec
	Exceeded *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Checks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "medtrust_ratelimit_checks_total",
			Help: "Rate limit checks by endpoint class",
		}, []string{"class"}),
		Exceeded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "medtrust_ratelimit_exceeded_total",
			Help: "Requests rejected by the per-IP rate limit, by endpoint class",
		}, []string{"class"}),
	}
}

func (m *Metrics) RecordCheck(class string) {
	if m == nil {
		return
	}
	m.Checks.WithLabelValues(class).Inc()
}

func (m *Metrics) RecordExceeded(class string) {
	if m == nil {
		return
	}
	m.Exceeded.WithLabelValues(class).Inc()
}
