package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus counters and gauges for the lesson media service.
type Metrics struct {
	registry            *prometheus.Registry
	requestsTotal       prometheus.Counter
	errorsTotal         prometheus.Counter
	grantsIssuedTotal   *prometheus.CounterVec
	degradedGrantsTotal *prometheus.CounterVec
	verificationsTotal  *prometheus.CounterVec
	storedLessons       prometheus.Gauge
}

// New creates and registers Prometheus metrics for the service.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lesson_media_requests_total",
		Help: "Total number of HTTP requests received",
	})
	errorsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lesson_media_errors_total",
		Help: "Total number of HTTP responses with error status (4xx or 5xx)",
	})
	grantsIssuedTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lesson_media_grants_issued_total",
		Help: "Total number of access URLs issued, by provider kind and whether they were signed",
	}, []string{"kind", "signed"})
	degradedGrantsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lesson_media_degraded_grants_total",
		Help: "Total number of protected URLs served unsigned because no secret was configured",
	}, []string{"kind"})
	verificationsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lesson_media_verifications_total",
		Help: "Total number of signed URL verifications, by result",
	}, []string{"result"})
	storedLessons := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "lesson_media_stored_lessons",
		Help: "Number of lessons currently stored",
	})

	registry.MustRegister(
		requestsTotal,
		errorsTotal,
		grantsIssuedTotal,
		degradedGrantsTotal,
		verificationsTotal,
		storedLessons,
	)

	return &Metrics{
		registry:            registry,
		requestsTotal:       requestsTotal,
		errorsTotal:         errorsTotal,
		grantsIssuedTotal:   grantsIssuedTotal,
		degradedGrantsTotal: degradedGrantsTotal,
		verificationsTotal:  verificationsTotal,
		storedLessons:       storedLessons,
	}
}

// IncRequests increments the total request counter.
func (m *Metrics) IncRequests() {
	m.requestsTotal.Inc()
}

// IncErrors increments the errors counter.
func (m *Metrics) IncErrors() {
	m.errorsTotal.Inc()
}

// ObserveGrant records an issued access URL. degraded marks a protected
// URL that went out unsigned.
func (m *Metrics) ObserveGrant(kind string, signed, degraded bool) {
	m.grantsIssuedTotal.WithLabelValues(kind, strconv.FormatBool(signed)).Inc()
	if degraded {
		m.degradedGrantsTotal.WithLabelValues(kind).Inc()
	}
}

// ObserveVerification records the outcome of a signed URL check.
func (m *Metrics) ObserveVerification(ok bool) {
	result := "rejected"
	if ok {
		result = "accepted"
	}
	m.verificationsTotal.WithLabelValues(result).Inc()
}

// SetStoredLessons sets the stored lessons gauge.
func (m *Metrics) SetStoredLessons(n int) {
	m.storedLessons.Set(float64(n))
}

// Handler returns an http.Handler that serves Prometheus metrics.
// updateGauges is called before each scrape to refresh gauge values.
func (m *Metrics) Handler(updateGauges func()) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if updateGauges != nil {
			updateGauges()
		}
		promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}).ServeHTTP(w, r)
	})
}
