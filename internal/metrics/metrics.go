// Package metrics collects and exposes Prometheus metrics of the student
// registry server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values of auth operations.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeError   = "error"
)

// MetricsCollector is the recording surface used by services, workers and
// HTTP middleware.
type MetricsCollector interface {
	RecordAuth(operation, outcome string)
	RecordSessionsSwept(count int64)
	RecordStudentsImported(count int)
	RecordHTTPRequest(method string, statusCode int, duration time.Duration)
}

// Collector is the Prometheus implementation of MetricsCollector.
type Collector struct {
	authOps          *prometheus.CounterVec
	sessionsSwept    prometheus.Counter
	studentsImported prometheus.Counter
	httpRequests     *prometheus.CounterVec
	httpLatency      prometheus.Histogram
}

// NewCollector creates a Collector and registers its metrics in reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		authOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "registry_auth_operations_total",
			Help: "Auth operations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		sessionsSwept: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "registry_sessions_swept_total",
			Help: "Expired sessions removed by the sweeper.",
		}),
		studentsImported: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "registry_students_imported_total",
			Help: "Student records created by CSV import.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "registry_http_requests_total",
			Help: "HTTP responses by method and status code.",
		}, []string{"method", "status_code"}),
		httpLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "registry_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.authOps,
		c.sessionsSwept,
		c.studentsImported,
		c.httpRequests,
		c.httpLatency,
	)

	return c
}

// RecordAuth counts one auth operation with its outcome.
func (c *Collector) RecordAuth(operation, outcome string) {
	c.authOps.WithLabelValues(operation, outcome).Inc()
}

// RecordSessionsSwept adds count to the swept sessions counter.
func (c *Collector) RecordSessionsSwept(count int64) {
	if count <= 0 {
		return
	}
	c.sessionsSwept.Add(float64(count))
}

// RecordStudentsImported adds count to the imported students counter.
func (c *Collector) RecordStudentsImported(count int) {
	if count <= 0 {
		return
	}
	c.studentsImported.Add(float64(count))
}

// RecordHTTPRequest records the status and latency of one HTTP request.
func (c *Collector) RecordHTTPRequest(method string, statusCode int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
	c.httpLatency.Observe(duration.Seconds())
}

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop returns a MetricsCollector that records nothing.
func Nop() MetricsCollector {
	return nopCollector{}
}

type nopCollector struct{}

func (nopCollector) RecordAuth(string, string)                    {}
func (nopCollector) RecordSessionsSwept(int64)                    {}
func (nopCollector) RecordStudentsImported(int)                   {}
func (nopCollector) RecordHTTPRequest(string, int, time.Duration) {}
