package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the access engine.
type Metrics struct {
	// Outcomes by flow and outcome
	Outcomes *prometheus.CounterVec

	// TrustDeltas sums applied deltas by flow, signed
	TrustDeltas *prometheus.CounterVec

	DecisionLatency *prometheus.HistogramVec

	// DependencyFailures counts swallowed trust and audit failures
	DependencyFailures *prometheus.CounterVec
}

// New registers the access collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Outcomes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "medtrust_access_outcomes_total",
			Help: "Access decisions by flow and outcome",
		}, []string{"flow", "outcome"}),

		TrustDeltas: f.NewCounterVec(prometheus.CounterOpts{
			Name: "medtrust_access_trust_delta_applications_total",
			Help: "Trust score adjustments by flow and direction",
		}, []string{"flow", "direction"}),

		DecisionLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "medtrust_access_decision_duration_seconds",
			Help:    "Duration of a full access flow including classification and side effects",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"flow"}),

		DependencyFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "medtrust_access_dependency_failures_total",
			Help: "Trust store and audit sink failures recovered during a decision",
		}, []string{"dependency"}),
	}
}

// IncrementOutcome records a decision outcome.
func (m *Metrics) IncrementOutcome(flow, outcome string) {
	if m != nil {
		m.Outcomes.WithLabelValues(flow, outcome).Inc()
	}
}

// RecordDelta counts one applied trust delta.
func (m *Metrics) RecordDelta(flow string, delta int) {
	if m == nil || delta == 0 {
		return
	}
	direction := "up"
	if delta < 0 {
		direction = "down"
	}
	m.TrustDeltas.WithLabelValues(flow, direction).Inc()
}

// ObserveLatency records the duration of one flow.
func (m *Metrics) ObserveLatency(flow string, d time.Duration) {
	if m != nil {
		m.DecisionLatency.WithLabelValues(flow).Observe(d.Seconds())
	}
}

// IncrementDependencyFailure records a swallowed dependency failure.
func (m *Metrics) IncrementDependencyFailure(dependency string) {
	if m != nil {
		m.DependencyFailures.WithLabelValues(dependency).Inc()
	}
}
