package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP layer
// and the allocation engine.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	outcomeTotal    *prometheus.CounterVec
	searchDuration  prometheus.Histogram
	solutionsFound  prometheus.Histogram
}

// NewMetricsService registers core Prometheus collectors.
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

	outcomeTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduler_outcomes_total",
		Help: "Scheduling outcomes by result code",
	}, []string{"result"})

	searchDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "scheduler_search_duration_seconds",
		Help:    "Wall time spent exploring candidate end dates per request",
		Buckets: prometheus.DefBuckets,
	})

	solutionsFound := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "scheduler_solutions_per_request",
		Help:    "Number of solutions returned per successful request",
		Buckets: []float64{0, 1, 2, 3, 4, 5},
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, outcomeTotal, searchDuration, solutionsFound, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		outcomeTotal:    outcomeTotal,
		searchDuration:  searchDuration,
		solutionsFound:  solutionsFound,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveScheduling records engine-level outcome metrics.
func (m *MetricsService) ObserveScheduling(result int, solutions int, duration time.Duration) {
	if m == nil {
		return
	}
	m.outcomeTotal.WithLabelValues(fmt.Sprintf("%d", result)).Inc()
	m.searchDuration.Observe(duration.Seconds())
	if solutions > 0 {
		m.solutionsFound.Observe(float64(solutions))
	}
}
