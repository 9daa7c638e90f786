package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService owns the Prometheus registry of the process.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	fsFetchDuration *prometheus.HistogramVec
	fsFetchTotal    *prometheus.CounterVec
	coursesReturned prometheus.Histogram
	cacheLookups    *prometheus.CounterVec
}

// NewMetricsService registers the service collectors on a private registry.
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

	fsFetchDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fs_fetch_duration_seconds",
		Help:    "Duration of taught-course calls to FS",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"institution"})

	fsFetchTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fs_fetch_total",
		Help: "Taught-course calls to FS by outcome",
	}, []string{"institution", "outcome"})

	coursesReturned := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "courses_returned",
		Help:    "Number of courses returned per listing",
		Buckets: prometheus.ExponentialBuckets(1, 4, 7),
	})

	cacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "course_cache_lookups_total",
		Help: "Course cache lookups by result",
	}, []string{"result"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, fsFetchDuration, fsFetchTotal, coursesReturned, cacheLookups, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		fsFetchDuration: fsFetchDuration,
		fsFetchTotal:    fsFetchTotal,
		coursesReturned: coursesReturned,
		cacheLookups:    cacheLookups,
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

// Registry returns the underlying registry.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveFSFetch records one FS call. It satisfies fs.FetchObserver.
func (m *MetricsService) ObserveFSFetch(institution int, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	inst := strconv.Itoa(institution)
	m.fsFetchDuration.WithLabelValues(inst).Observe(duration.Seconds())
	m.fsFetchTotal.WithLabelValues(inst, outcome).Inc()
}

// ObserveCoursesReturned records the size of a course listing.
func (m *MetricsService) ObserveCoursesReturned(n int) {
	if m == nil {
		return
	}
	m.coursesReturned.Observe(float64(n))
}

// RecordCacheOperation counts cache hits and misses.
func (m *MetricsService) RecordCacheOperation(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}
