package justification

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics instruments classification. A nil *Metrics records nothing.
type Metrics struct {
	Classifications *prometheus.CounterVec
	ModelFailures   prometheus.Counter
	ModelLatency    prometheus.Histogram
}

// NewMetrics registers the collectors with reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Classifications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "medtrust_justification_classifications_total",
			Help: "Justifications classified, by source and resulting category",
		}, []string{"source", "category"}),
		ModelFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "medtrust_justification_model_failures_total",
			Help: "Model invocations that failed and fell back to keyword analysis",
		}),
		ModelLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "medtrust_justification_model_duration_ms",
			Help:    "Latency of the two-model classification in milliseconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50},
		}),
	}
}

func (m *Metrics) observeClassification(c Classification) {
	if m == nil {
		return
	}
	m.Classifications.WithLabelValues(string(c.Source), string(c.Category)).Inc()
}

func (m *Metrics) incModelFailure() {
	if m == nil {
		return
	}
	m.ModelFailures.Inc()
}

func (m *Metrics) observeModelLatency(ms float64) {
	if m == nil {
		return
	}
	m.ModelLatency.Observe(ms)
}
