// Package metrics exposes contingency queue instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	QueueDepth prometheus.Gauge
	Replays    *prometheus.CounterVec
}

// New registers queue metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		QueueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "facturador_contingency_queue_depth",
			Help: "Documents waiting for retransmission.",
		}),
		Replays: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "facturador_contingency_replays_total",
			Help: "Replay attempts, by outcome.",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) SetQueueDepth(n int) {
	if m == nil {
		return
	}
	m.QueueDepth.Set(float64(n))
}

func (m *Metrics) IncrementReplays(outcome string) {
	if m == nil {
		return
	}
	m.Replays.WithLabelValues(outcome).Inc()
}
