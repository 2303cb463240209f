package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the service's Prometheus collectors. All metrics share
// the pslint_ prefix.
type Metrics struct {
	// HTTP surface
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestSize     *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	// Lint engine
	LintRunsTotal    *prometheus.CounterVec
	LintRunDuration  *prometheus.HistogramVec
	DiagnosticsTotal prometheus.Counter
	RuleFaultsTotal  *prometheus.CounterVec
	FilesLintedTotal *prometheus.CounterVec

	// Parsed-tree cache
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec
}

// NewMetrics builds the collectors and registers them on registry.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pslint_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pslint_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPRequestSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pslint_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 8),
			},
			[]string{"method", "path"},
		),
		HTTPResponseSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pslint_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 8),
			},
			[]string{"method", "path"},
		),

		LintRunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pslint_lint_runs_total",
				Help: "Total number of lint runs",
			},
			[]string{"status"},
		),
		LintRunDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pslint_lint_run_duration_seconds",
				Help:    "Lint run duration in seconds",
				Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
			},
			[]string{"source"},
		),
		DiagnosticsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "pslint_diagnostics_total",
				Help: "Total number of diagnostics produced",
			},
		),
		RuleFaultsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pslint_rule_faults_total",
				Help: "Total number of rule invocation faults",
			},
			[]string{"rule"},
		),
		FilesLintedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pslint_files_linted_total",
				Help: "Total number of files linted",
			},
			[]string{"status"},
		),

		CacheHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pslint_cache_hits_total",
				Help: "Total number of cache hits",
			},
			[]string{"cache_type"},
		),
		CacheMissesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pslint_cache_misses_total",
				Help: "Total number of cache misses",
			},
			[]string{"cache_type"},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestSize,
		m.HTTPResponseSize,
		m.LintRunsTotal,
		m.LintRunDuration,
		m.DiagnosticsTotal,
		m.RuleFaultsTotal,
		m.FilesLintedTotal,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
	)

	return m
}

// RecordDiagnostics counts diagnostics produced for a file.
func (m *Metrics) RecordDiagnostics(path string, count int) {
	m.DiagnosticsTotal.Add(float64(count))
}

// RecordRuleFault counts a rule invocation fault.
func (m *Metrics) RecordRuleFault(rule string) {
	m.RuleFaultsTotal.WithLabelValues(rule).Inc()
}

// RecordCacheLookup counts a parsed-tree cache hit or miss.
func (m *Metrics) RecordCacheLookup(hit bool) {
	if hit {
		m.CacheHitsTotal.WithLabelValues("tree").Inc()
		return
	}
	m.CacheMissesTotal.WithLabelValues("tree").Inc()
}

// RecordFileLinted counts one linted file by outcome.
func (m *Metrics) RecordFileLinted(ok bool) {
	status := "ok"
	if !ok {
		status = "error"
	}
	m.FilesLintedTotal.WithLabelValues(status).Inc()
}

// responseWriter captures the status code and body size a handler writes.
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += n
	return n, err
}

// HTTPMetricsMiddleware records request count, latency and body sizes for
// every request passing through it.
func HTTPMetricsMiddleware(metrics *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			if r.ContentLength > 0 {
				metrics.HTTPRequestSize.WithLabelValues(r.Method, r.URL.Path).Observe(float64(r.ContentLength))
			}

			next.ServeHTTP(rw, r)

			status := strconv.Itoa(rw.statusCode)
			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
			metrics.HTTPResponseSize.WithLabelValues(r.Method, r.URL.Path).Observe(float64(rw.bytesWritten))
		})
	}
}

// RegisterMetricsEndpoint mounts the Prometheus scrape endpoint on mux.
func RegisterMetricsEndpoint(mux *http.ServeMux, registry *prometheus.Registry) {
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
}
