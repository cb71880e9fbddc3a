package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncLogin("success")
	m.IncLogin("success")
	m.IncLogin("failure")
	m.IncRegistration("LAWYER", "pending_verification")
	m.IncPollOutcome("abandoned", "expired")
	m.AddActivePollers(1)

	assert.InDelta(t, 2, testutil.ToFloat64(m.Logins.WithLabelValues("success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Logins.WithLabelValues("failure")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Registrations.WithLabelValues("LAWYER", "pending_verification")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.PollOutcomes.WithLabelValues("abandoned", "expired")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ActivePollers), 0)
}

func TestLatencyHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveAPILatency("/auth/login", "200", time.Now().Add(-50*time.Millisecond))

	count, err := testutil.GatherAndCount(reg, "jurify_api_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncLogin("success")
		m.IncTokenRefresh("failure")
		m.IncGeocodeFailure("reverse", "breaker_open")
		m.ObserveAPILatency("/users/me", "200", time.Now())
		m.AddActivePollers(-1)
	})
}
