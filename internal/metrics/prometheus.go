package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fragments"

// PrometheusRecorder implements Recorder on a private registry.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	counterIncrements  prometheus.Counter
	contactSubmissions *prometheus.CounterVec
	renderDuration     *prometheus.HistogramVec
	renderErrors       *prometheus.CounterVec
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

var _ Recorder = (*PrometheusRecorder)(nil)

// NewPrometheusRecorder registers the collectors on a fresh registry. When
// withRuntime is set the Go and process collectors are registered too.
func NewPrometheusRecorder(withRuntime bool) *PrometheusRecorder {
	r := &PrometheusRecorder{
		registry: prometheus.NewRegistry(),
		counterIncrements: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "counter",
			Name:      "increments_total",
			Help:      "Total number of counter increments.",
		}),
		contactSubmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "contacts",
			Name:      "submissions_total",
			Help:      "Contact form submissions by outcome.",
		}, []string{"result"}),
		renderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "duration_seconds",
			Help:      "Duration of template block renders.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
		}, []string{"template", "block"}),
		renderErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "errors_total",
			Help:      "Template block renders that failed.",
		}, []string{"template", "block"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"method", "route"}),
	}

	r.registry.MustRegister(
		r.counterIncrements,
		r.contactSubmissions,
		r.renderDuration,
		r.renderErrors,
		r.httpRequests,
		r.httpDuration,
	)
	if withRuntime {
		r.registry.MustRegister(
			prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
			prometheus.NewGoCollector(),
		)
	}
	return r
}

// Registry exposes the underlying registry, mainly for tests.
func (r *PrometheusRecorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *PrometheusRecorder) IncCounter() {
	r.counterIncrements.Inc()
}

func (r *PrometheusRecorder) IncContactSubmission(result SubmissionResult) {
	r.contactSubmissions.WithLabelValues(string(result)).Inc()
}

func (r *PrometheusRecorder) ObserveRender(template, block string, d time.Duration, err error) {
	r.renderDuration.WithLabelValues(template, block).Observe(d.Seconds())
	if err != nil {
		r.renderErrors.WithLabelValues(template, block).Inc()
	}
}

func (r *PrometheusRecorder) ObserveHTTP(method, route string, status int, d time.Duration) {
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
