package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersOnGivenRegistry(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.ObserveRequest("transmit", 250*time.Millisecond)
	m.IncrementRequests("transmit", "ok")
	m.IncrementTransmitRetries()

	families, err := registry.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["facturador_mh_request_duration_seconds"])
	assert.True(t, names["facturador_mh_requests_total"])
	assert.True(t, names["facturador_mh_transmit_retries_total"])
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest("auth", time.Second)
		m.IncrementRequests("auth", "ok")
		m.IncrementTransmitRetries()
	})
}
