package service

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the board.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	refusals        *prometheus.CounterVec
	mutations       *prometheus.CounterVec
	syncWrites      *prometheus.CounterVec
	syncLatency     prometheus.Histogram
	pendingSlots    prometheus.Gauge
	loads           *prometheus.CounterVec
	cacheLatency    prometheus.Histogram
	cacheWrite      prometheus.Histogram
	cacheLookups    *prometheus.CounterVec
}

// NewMetricsService registers the collectors on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	m := &MetricsService{
		registry: registry,
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		refusals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "board_refusals_total",
			Help: "Assignments refused because of a double booking",
		}, []string{"kind"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "board_mutations_total",
			Help: "Accepted board mutations",
		}, []string{"op"}),
		syncWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sync_slot_writes_total",
			Help: "Slot writes sent to the backing store by outcome",
		}, []string{"result"}),
		syncLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sync_slot_write_seconds",
			Help:    "Latency of slot writes to the backing store",
			Buckets: prometheus.DefBuckets,
		}),
		pendingSlots: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sync_pending_slots",
			Help: "Slots whose latest write has not reached the backing store",
		}),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sync_board_loads_total",
			Help: "Full board loads from the backing store by outcome",
		}, []string{"result"}),
		cacheLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cache_latency_seconds",
			Help:    "Latency for cache lookups",
			Buckets: prometheus.DefBuckets,
		}),
		cacheWrite: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cache_write_seconds",
			Help:    "Latency for cache set operations",
			Buckets: prometheus.DefBuckets,
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_lookups_total",
			Help: "Snapshot cache lookups by result",
		}, []string{"result"}),
	}

	registry.MustRegister(
		m.requestDuration, m.requestTotal, m.refusals, m.mutations, m.syncWrites, m.syncLatency,
		m.pendingSlots, m.loads, m.cacheLatency, m.cacheWrite, m.cacheLookups,
		collectors.NewGoCollector(),
	)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
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

// Registry exposes the underlying registry.
func (m *MetricsService) Registry() *prometheus.Registry {
	return m.registry
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

// RecordRefusal counts a refused teacher or location drop.
func (m *MetricsService) RecordRefusal(kind string) {
	if m == nil {
		return
	}
	m.refusals.WithLabelValues(kind).Inc()
}

// RecordMutation counts an accepted mutation.
func (m *MetricsService) RecordMutation(op string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(op).Inc()
}

// RecordSyncWrite records the outcome of one slot write attempt.
func (m *MetricsService) RecordSyncWrite(result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.syncWrites.WithLabelValues(result).Inc()
	if duration > 0 {
		m.syncLatency.Observe(duration.Seconds())
	}
}

// SetPendingSlots updates the pending slot gauge.
func (m *MetricsService) SetPendingSlots(n int) {
	if m == nil {
		return
	}
	m.pendingSlots.Set(float64(n))
}

// RecordLoad counts a full board load.
func (m *MetricsService) RecordLoad(result string) {
	if m == nil {
		return
	}
	m.loads.WithLabelValues(result).Inc()
}

// RecordCacheOperation records a cache hit or miss.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	if hit {
		m.cacheLookups.WithLabelValues("hit").Inc()
	} else {
		m.cacheLookups.WithLabelValues("miss").Inc()
	}
}

// ObserveCacheWrite tracks the duration for cache write operations.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}
