package access

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Decisions *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Decisions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "backoffice_access_guard_decisions_total",
			Help: "Access guard decisions by outcome and reason.",
		}, []string{"allowed", "reason"}),
	}
}

func (m *Metrics) recordDecision(d Decision) {
	if m == nil {
		return
	}
	m.Decisions.WithLabelValues(strconv.FormatBool(d.Allowed), d.Reason).Inc()
}
