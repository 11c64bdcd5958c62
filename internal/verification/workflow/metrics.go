package workflow

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"backoffice/internal/verification"
)

type Metrics struct {
	Submissions *prometheus.CounterVec
	Transitions *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Submissions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "backoffice_verification_submissions_total",
			Help: "Verification status submissions by outcome.",
		}, []string{"outcome"}),
		Transitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "backoffice_verification_transitions_total",
			Help: "Applied verification status transitions.",
		}, []string{"from", "to"}),
	}
}

func (m *Metrics) recordSubmission(outcome string) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) recordTransition(from, to verification.Status) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(string(from), string(to)).Inc()
}
