package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the sync
// pipelines and the HTTP trigger surface.
type MetricsService struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	prefetchDuration *prometheus.HistogramVec
	pushTotal        *prometheus.CounterVec
	recordsPushed    prometheus.Counter
	pendingRecords   prometheus.Gauge
	onlineState      prometheus.Gauge
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

	prefetchDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "prefetch_duration_seconds",
		Help:    "Duration of prefetch pipeline runs",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})

	pushTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "push_sync_runs_total",
		Help: "Push pipeline runs by outcome",
	}, []string{"outcome"})

	recordsPushed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "progress_records_pushed_total",
		Help: "Progress records confirmed uploaded",
	})

	pendingRecords := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "progress_records_pending",
		Help: "Progress records awaiting upload",
	})

	onlineState := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "remote_online",
		Help: "1 when the remote backend is reachable",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, prefetchDuration, pushTotal, recordsPushed, pendingRecords, onlineState, goroutines)

	return &MetricsService{
		registry:         registry,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		prefetchDuration: prefetchDuration,
		pushTotal:        pushTotal,
		recordsPushed:    recordsPushed,
		pendingRecords:   pendingRecords,
		onlineState:      onlineState,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records request metrics.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := []string{method, path, strconv.Itoa(status)}
	s.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(labels...).Inc()
}

// ObservePrefetch records one prefetch run.
func (s *MetricsService) ObservePrefetch(duration time.Duration, success bool) {
	if s == nil {
		return
	}
	s.prefetchDuration.WithLabelValues(outcomeLabel(success)).Observe(duration.Seconds())
}

// ObservePush records one push run and the number of records uploaded.
func (s *MetricsService) ObservePush(uploaded int, success bool) {
	if s == nil {
		return
	}
	s.pushTotal.WithLabelValues(outcomeLabel(success)).Inc()
	if uploaded > 0 {
		s.recordsPushed.Add(float64(uploaded))
	}
}

// SetPending updates the pending-records gauge.
func (s *MetricsService) SetPending(count int) {
	if s == nil {
		return
	}
	s.pendingRecords.Set(float64(count))
}

// SetOnline updates the connectivity gauge.
func (s *MetricsService) SetOnline(online bool) {
	if s == nil {
		return
	}
	if online {
		s.onlineState.Set(1)
		return
	}
	s.onlineState.Set(0)
}

func outcomeLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
