package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the MH protocol client.
type Metrics struct {
	// Request latencies by operation
	RequestLatency *prometheus.HistogramVec

	// Request outcomes by operation and result
	RequestsTotal *prometheus.CounterVec

	// Transmission retries after transport failures
	TransmitRetries prometheus.Counter
}

// New registers MH client metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "facturador_mh_request_duration_seconds",
			Help:    "Duration of MH API requests by operation",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"operation"}), // operation: "auth", "transmit", "query", "invalidate", "contingency"

		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "facturador_mh_requests_total",
			Help: "Total MH API requests by operation and outcome",
		}, []string{"operation", "outcome"}), // outcome: "ok", "rejected", "transport", "error"

		TransmitRetries: factory.NewCounter(prometheus.CounterOpts{
			Name: "facturador_mh_transmit_retries_total",
			Help: "Total transmission retries after transport failures",
		}),
	}
}

// ObserveRequest records one request's duration.
func (m *Metrics) ObserveRequest(operation string, d time.Duration) {
	if m != nil {
		m.RequestLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}

// IncrementRequests records a request outcome.
func (m *Metrics) IncrementRequests(operation, outcome string) {
	if m != nil {
		m.RequestsTotal.WithLabelValues(operation, outcome).Inc()
	}
}

// IncrementTransmitRetries records one retry.
func (m *Metrics) IncrementTransmitRetries() {
	if m != nil {
		m.TransmitRetries.Inc()
	}
}
