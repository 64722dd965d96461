package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Booking outcomes recorded by BookingAttempts.
const (
	OutcomeCreated    = "created"
	OutcomeNotFound   = "not_found"
	OutcomeConflict   = "conflict"
	OutcomeValidation = "validation"
	OutcomeError      = "error"
)

type Metrics struct {
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	BookingAttempts *prometheus.CounterVec
}

// New registers the collectors on reg. Tests pass a fresh prometheus.NewRegistry().
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stay_booking_http_requests_total",
			Help: "HTTP requests by route pattern, method and status code",
		}, []string{"route", "method", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stay_booking_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern and method",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		BookingAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stay_booking_booking_attempts_total",
			Help: "Booking creation attempts by outcome",
		}, []string{"outcome"}),
	}
}

// ObserveBooking is safe on a nil receiver.
func (m *Metrics) ObserveBooking(outcome string) {
	if m == nil {
		return
	}
	m.BookingAttempts.WithLabelValues(outcome).Inc()
}
