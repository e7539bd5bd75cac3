package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is nil-safe: a nil *Metrics records nothing.
type Metrics struct {
	created     *prometheus.CounterVec
	duplicates  prometheus.Counter
	conflicts   *prometheus.CounterVec
	transitions *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		created: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "golf",
			Subsystem: "booking",
			Name:      "created_total",
			Help:      "Bookings created, by booking type.",
		}, []string{"type"}),
		duplicates: f.NewCounter(prometheus.CounterOpts{
			Namespace: "golf",
			Subsystem: "booking",
			Name:      "duplicate_requests_total",
			Help:      "Create requests answered from an earlier request id.",
		}),
		conflicts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "golf",
			Subsystem: "booking",
			Name:      "conflicts_total",
			Help:      "Rejected writes, by stage (preflight, commit, version, in_flight).",
		}, []string{"stage"}),
		transitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "golf",
			Subsystem: "booking",
			Name:      "transitions_total",
			Help:      "Status transitions, by action and result.",
		}, []string{"action", "result"}),
	}
}

func (m *Metrics) BookingCreated(bookingType string) {
	if m == nil {
		return
	}
	m.created.WithLabelValues(bookingType).Inc()
}

func (m *Metrics) DuplicateRequest() {
	if m == nil {
		return
	}
	m.duplicates.Inc()
}

func (m *Metrics) Conflict(stage string) {
	if m == nil {
		return
	}
	m.conflicts.WithLabelValues(stage).Inc()
}

func (m *Metrics) Transition(action, result string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(action, result).Inc()
}
