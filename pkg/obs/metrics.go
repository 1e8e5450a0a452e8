package obs

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors flock exports. Each instance registers against
// its own registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	httpInFlight        prometheus.Gauge
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	logins        *prometheus.CounterVec
	auditEvents   *prometheus.CounterVec
	rateLimited   *prometheus.CounterVec
	sweptRows     *prometheus.CounterVec
	planLimitHits *prometheus.CounterVec
}

// New builds and registers every collector, along with the Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "flock_http_in_flight_requests",
			Help: "In-flight HTTP requests.",
		}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flock_http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "flock_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flock_logins_total",
			Help: "Login attempts by outcome.",
		}, []string{"result"}),
		auditEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flock_audit_events_total",
			Help: "Audit rows written by entity type and action.",
		}, []string{"entity", "action"}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flock_rate_limited_total",
			Help: "Requests rejected by a rate limiter.",
		}, []string{"bucket"}),
		sweptRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flock_housekeeping_swept_total",
			Help: "Expired rows removed by housekeeping.",
		}, []string{"kind"}),
		planLimitHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flock_plan_limit_reached_total",
			Help: "Creates refused because the organization hit its plan limit.",
		}, []string{"resource"}),
	}

	m.registry.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		m.httpInFlight,
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.logins,
		m.auditEvents,
		m.rateLimited,
		m.sweptRows,
		m.planLimitHits,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Instrument records in-flight, count and latency for every request. The
// route label is the matched ServeMux pattern so ids in paths don't explode
// label cardinality.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(sw.code)

		m.httpRequestDuration.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
		m.httpRequestsTotal.WithLabelValues(r.Method, route, status).Inc()
	})
}

// ObserveLogin counts a login attempt; result is "success", "failure",
// "mfa_required" or "rate_limited".
func (m *Metrics) ObserveLogin(result string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveAudit(entity, action string) {
	if m == nil {
		return
	}
	m.auditEvents.WithLabelValues(entity, action).Inc()
}

func (m *Metrics) ObserveRateLimited(bucket string) {
	if m == nil {
		return
	}
	m.rateLimited.WithLabelValues(bucket).Inc()
}

func (m *Metrics) ObserveSwept(kind string, n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.sweptRows.WithLabelValues(kind).Add(float64(n))
}

func (m *Metrics) ObservePlanLimit(resource string) {
	if m == nil {
		return
	}
	m.planLimitHits.WithLabelValues(resource).Inc()
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
