package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters for the reserve/confirm flow.
type BookingMetrics struct {
	holdsCreated  prometheus.Counter
	confirmations *prometheus.CounterVec
	rejections    *prometheus.CounterVec
	emailsSent    *prometheus.CounterVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		holdsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "detailing",
			Subsystem: "booking",
			Name:      "holds_created_total",
			Help:      "Total pending holds created",
		}),
		confirmations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "detailing",
			Subsystem: "booking",
			Name:      "confirmations_total",
			Help:      "Total confirmation attempts by outcome",
		}, []string{"outcome"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "detailing",
			Subsystem: "booking",
			Name:      "rejections_total",
			Help:      "Total rejected booking submissions by kind",
		}, []string{"kind"}),
		emailsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "detailing",
			Subsystem: "booking",
			Name:      "emails_total",
			Help:      "Total notification emails by template and status",
		}, []string{"template", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.holdsCreated, m.confirmations, m.rejections, m.emailsSent)
	return m
}

func (m *BookingMetrics) ObserveHoldCreated() {
	if m == nil {
		return
	}
	m.holdsCreated.Inc()
}

func (m *BookingMetrics) ObserveConfirmation(outcome string) {
	if m == nil {
		return
	}
	m.confirmations.WithLabelValues(outcome).Inc()
}

func (m *BookingMetrics) ObserveRejection(kind string) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(kind).Inc()
}

func (m *BookingMetrics) ObserveEmail(template, status string) {
	if m == nil {
		return
	}
	m.emailsSent.WithLabelValues(template, status).Inc()
}
