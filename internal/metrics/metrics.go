// Package metrics exposes the service's Prometheus instrumentation.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "siteaudit"

var (
	// AuditsStarted counts orchestrated audit runs.
	AuditsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audits_started_total",
		Help:      "Number of audit runs started.",
	})

	moduleCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "module_calls_total",
		Help:      "Module client invocations by module and outcome.",
	}, []string{"module", "outcome"})

	moduleDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "module_call_duration_seconds",
		Help:      "Wall time of module client invocations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"module"})

	// HTTPRequests counts served HTTP requests by route, method and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests served by route, method and status code.",
	}, []string{"route", "method", "status"})

	// HTTPDuration tracks request latency by route.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
)

// ObserveModuleCall records one module invocation.
func ObserveModuleCall(module string, elapsed time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	moduleCalls.WithLabelValues(module, outcome).Inc()
	moduleDuration.WithLabelValues(module).Observe(elapsed.Seconds())
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
