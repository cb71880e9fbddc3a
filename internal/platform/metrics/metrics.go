package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the gateway. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	Logins            *prometheus.CounterVec
	Registrations     *prometheus.CounterVec
	PollOutcomes      *prometheus.CounterVec
	GeocodeFailures   *prometheus.CounterVec
	TokenRefreshes    *prometheus.CounterVec
	ActivePollers     prometheus.Gauge
	APIRequestLatency *prometheus.HistogramVec
}

// New creates and registers all metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Logins: f.NewCounterVec(prometheus.CounterOpts{
			Name: "jurify_logins_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
		Registrations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "jurify_registrations_total",
			Help: "Registration submissions by role and outcome",
		}, []string{"role", "outcome"}),
		PollOutcomes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "jurify_verification_polls_total",
			Help: "Finished verification pollers by terminal state and reason",
		}, []string{"state", "reason"}),
		GeocodeFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "jurify_geocode_failures_total",
			Help: "Geocoding lookups that yielded no enrichment",
		}, []string{"operation", "cause"}),
		TokenRefreshes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "jurify_token_refreshes_total",
			Help: "Access token refreshes by outcome",
		}, []string{"outcome"}),
		ActivePollers: f.NewGauge(prometheus.GaugeOpts{
			Name: "jurify_verification_pollers_active",
			Help: "Verification pollers currently running",
		}),
		APIRequestLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "jurify_api_request_duration_seconds",
			Help:    "Latency of calls to the Jurify backend API",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint", "status"}),
	}
}

func (m *Metrics) IncLogin(outcome string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncRegistration(role, outcome string) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(role, outcome).Inc()
}

func (m *Metrics) IncPollOutcome(state, reason string) {
	if m == nil {
		return
	}
	m.PollOutcomes.WithLabelValues(state, reason).Inc()
}

func (m *Metrics) IncGeocodeFailure(operation, cause string) {
	if m == nil {
		return
	}
	m.GeocodeFailures.WithLabelValues(operation, cause).Inc()
}

func (m *Metrics) IncTokenRefresh(outcome string) {
	if m == nil {
		return
	}
	m.TokenRefreshes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) AddActivePollers(delta float64) {
	if m == nil {
		return
	}
	m.ActivePollers.Add(delta)
}

// ObserveAPILatency records the duration since start for a backend endpoint.
func (m *Metrics) ObserveAPILatency(endpoint, status string, start time.Time) {
	if m == nil {
		return
	}
	m.APIRequestLatency.WithLabelValues(endpoint, status).Observe(time.Since(start).Seconds())
}
