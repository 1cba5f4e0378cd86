package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP
// surface and the generation pipeline.
type MetricsService struct {
	registry           *prometheus.Registry
	handler            http.Handler
	requestDuration    *prometheus.HistogramVec
	requestTotal       *prometheus.CounterVec
	generationDuration *prometheus.HistogramVec
	generationTotal    *prometheus.CounterVec
}

// NewMetricsService registers the collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	generationDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "generation_duration_seconds",
		Help:    "Wall-clock duration of completion calls in seconds",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
	}, []string{"kind"})

	generationTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "generation_requests_total",
		Help: "Total number of generation attempts by kind and outcome",
	}, []string{"kind", "outcome"})

	registry.MustRegister(requestDuration, requestTotal, generationDuration, generationTotal)

	return &MetricsService{
		registry:           registry,
		handler:            promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:    requestDuration,
		requestTotal:       requestTotal,
		generationDuration: generationDuration,
		generationTotal:    generationTotal,
	}
}

// Handler exposes the registry for the /metrics endpoint.
func (m *MetricsService) Handler() http.Handler {
	return m.handler
}

// ObserveHTTPRequest records one handled HTTP request.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := prometheus.Labels{"method": method, "path": path, "status": strconv.Itoa(status)}
	m.requestDuration.With(labels).Observe(duration.Seconds())
	m.requestTotal.With(labels).Inc()
}

// ObserveGeneration records one generation attempt.
func (m *MetricsService) ObserveGeneration(kind, outcome string, duration time.Duration) {
	m.generationTotal.With(prometheus.Labels{"kind": kind, "outcome": outcome}).Inc()
	m.generationDuration.With(prometheus.Labels{"kind": kind}).Observe(duration.Seconds())
}
