// Package metrics exposes session lifecycle instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ActiveSessions prometheus.Gauge
	Evictions      *prometheus.CounterVec
}

// New registers session metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "facturador_session_active",
			Help: "Number of live server-side sessions.",
		}),
		Evictions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "facturador_session_evictions_total",
			Help: "Sessions evicted, by reason.",
		}, []string{"reason"}),
	}
}

func (m *Metrics) SetActive(n int) {
	if m == nil {
		return
	}
	m.ActiveSessions.Set(float64(n))
}

func (m *Metrics) IncrementEvictions(reason string) {
	if m == nil {
		return
	}
	m.Evictions.WithLabelValues(reason).Inc()
}
