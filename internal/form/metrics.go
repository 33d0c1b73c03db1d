package form

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes counters for the cascade fetches and submissions.
type Metrics struct {
	fetchesTotal     *prometheus.CounterVec
	staleDropsTotal  *prometheus.CounterVec
	submissionsTotal *prometheus.CounterVec
}

// NewMetrics registers the form counters on reg (DefaultRegisterer when nil).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		fetchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinicform",
			Subsystem: "cascade",
			Name:      "fetches_total",
			Help:      "Dependent-field fetches issued by the cascade",
		}, []string{"field", "status"}),
		staleDropsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinicform",
			Subsystem: "cascade",
			Name:      "stale_responses_dropped_total",
			Help:      "Responses discarded because a newer request superseded them",
		}, []string{"field"}),
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinicform",
			Subsystem: "booking",
			Name:      "submissions_total",
			Help:      "Booking submissions by classified outcome",
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.fetchesTotal, m.staleDropsTotal, m.submissionsTotal)
	return m
}

// ObserveFetch counts a resolved dependent-field fetch.
func (m *Metrics) ObserveFetch(field, status string) {
	if m == nil {
		return
	}
	m.fetchesTotal.WithLabelValues(field, status).Inc()
}

// ObserveStaleDrop counts a discarded out-of-date response.
func (m *Metrics) ObserveStaleDrop(field string) {
	if m == nil {
		return
	}
	m.staleDropsTotal.WithLabelValues(field).Inc()
}

// ObserveSubmission counts a classified submission outcome.
func (m *Metrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}
