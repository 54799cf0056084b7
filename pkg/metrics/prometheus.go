// Package metrics provides Prometheus metrics for the toplist service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the toplist service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Core business metrics
	itemsCreated     prometheus.Counter
	itemsUpdated     prometheus.Counter
	itemsDeleted     prometheus.Counter
	votesCast        prometheus.Counter
	reordersApplied  prometheus.Counter
	reorderConflicts prometheus.Counter

	// Operational health metrics
	totalItems      prometheus.Gauge
	totalCategories prometheus.Gauge

	// Store performance metrics
	storeUpdateLatency prometheus.Histogram
	storeQueryLatency  prometheus.Histogram

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error tracking
	errorsByEndpoint *prometheus.CounterVec
	errorsByType     *prometheus.CounterVec

	// System performance metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "toplist",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

// initializeMetrics creates all metric instances on the configured registry.
func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.itemsCreated = factory.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.metricPrefix + "items_created_total",
		Help:        "Total number of items created",
		ConstLabels: m.constLabels(),
	})
	m.itemsUpdated = factory.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.metricPrefix + "items_updated_total",
		Help:        "Total number of item updates applied",
		ConstLabels: m.constLabels(),
	})
	m.itemsDeleted = factory.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.metricPrefix + "items_deleted_total",
		Help:        "Total number of items deleted",
		ConstLabels: m.constLabels(),
	})
	m.votesCast = factory.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.metricPrefix + "votes_cast_total",
		Help:        "Total number of votes cast",
		ConstLabels: m.constLabels(),
	})
	m.reordersApplied = factory.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.metricPrefix + "reorders_applied_total",
		Help:        "Total number of category reorders applied",
		ConstLabels: m.constLabels(),
	})
	m.reorderConflicts = factory.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.metricPrefix + "reorder_conflicts_total",
		Help:        "Total number of reorders rejected due to conflicts",
		ConstLabels: m.constLabels(),
	})

	m.totalItems = factory.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.metricPrefix + "items",
		Help:        "Current number of items in the store",
		ConstLabels: m.constLabels(),
	})
	m.totalCategories = factory.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.metricPrefix + "categories",
		Help:        "Current number of distinct categories",
		ConstLabels: m.constLabels(),
	})

	m.storeUpdateLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.metricPrefix + "store_update_latency_ms",
		Help:        "Latency of store mutations in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels(),
	})
	m.storeQueryLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.metricPrefix + "store_query_latency_ms",
		Help:        "Latency of store queries in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels(),
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.metricPrefix + "http_requests_total",
		Help:        "Total number of HTTP requests",
		ConstLabels: m.constLabels(),
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.metricPrefix + "http_request_duration_ms",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels(),
	}, []string{"endpoint", "method", "status"})

	m.errorsByEndpoint = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.metricPrefix + "errors_by_endpoint_total",
		Help:        "Total errors partitioned by endpoint and method",
		ConstLabels: m.constLabels(),
	}, []string{"endpoint", "method", "error_type"})
	m.errorsByType = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.metricPrefix + "errors_by_type_total",
		Help:        "Total errors partitioned by type and severity",
		ConstLabels: m.constLabels(),
	}, []string{"error_type", "severity"})

	m.systemMemoryUsage = factory.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.metricPrefix + "system_memory_bytes",
		Help:        "Current allocated memory in bytes",
		ConstLabels: m.constLabels(),
	})
	m.systemGoroutineCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.metricPrefix + "system_goroutines",
		Help:        "Current number of goroutines",
		ConstLabels: m.constLabels(),
	})
	m.systemGCPauseTime = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.metricPrefix + "system_gc_pause_ms",
		Help:        "GC pause time in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels(),
	})
}

func (m *Manager) constLabels() prometheus.Labels {
	if len(m.customLabels) == 0 {
		return nil
	}
	labels := make(prometheus.Labels, len(m.customLabels))
	for k, v := range m.customLabels {
		labels[k] = v
	}
	return labels
}

// GetRegistry returns the custom Prometheus registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers recording through the global manager.

// RecordItemCreated increments the created-items counter.
func RecordItemCreated() {
	if globalManager.enabled {
		globalManager.itemsCreated.Inc()
	}
}

// RecordItemUpdated increments the updated-items counter.
func RecordItemUpdated() {
	if globalManager.enabled {
		globalManager.itemsUpdated.Inc()
	}
}

// RecordItemDeleted increments the deleted-items counter.
func RecordItemDeleted() {
	if globalManager.enabled {
		globalManager.itemsDeleted.Inc()
	}
}

// RecordVoteCast increments the votes counter.
func RecordVoteCast() {
	if globalManager.enabled {
		globalManager.votesCast.Inc()
	}
}

// RecordReorderApplied increments the applied-reorders counter.
func RecordReorderApplied() {
	if globalManager.enabled {
		globalManager.reordersApplied.Inc()
	}
}

// RecordReorderConflict increments the rejected-reorders counter.
func RecordReorderConflict() {
	if globalManager.enabled {
		globalManager.reorderConflicts.Inc()
	}
}

// UpdateTotalItems sets the current item count gauge.
func UpdateTotalItems(count int) {
	if globalManager.enabled {
		globalManager.totalItems.Set(float64(count))
	}
}

// UpdateTotalCategories sets the current category count gauge.
func UpdateTotalCategories(count int) {
	if globalManager.enabled {
		globalManager.totalCategories.Set(float64(count))
	}
}

// RecordStoreUpdateLatency observes a store mutation latency in milliseconds.
func RecordStoreUpdateLatency(ms float64) {
	if globalManager.enabled {
		globalManager.storeUpdateLatency.Observe(ms)
	}
}

// RecordStoreQueryLatency observes a store query latency in milliseconds.
func RecordStoreQueryLatency(ms float64) {
	if globalManager.enabled {
		globalManager.storeQueryLatency.Observe(ms)
	}
}

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, status string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
	}
}

// RecordHTTPRequestDuration observes an HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
	}
}

// RecordErrorByEndpoint increments the per-endpoint error counter.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if globalManager.enabled {
		globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// RecordErrorByType increments the per-type error counter.
func RecordErrorByType(errorType, severity string) {
	if globalManager.enabled {
		globalManager.errorsByType.WithLabelValues(errorType, severity).Inc()
	}
}

// UpdateSystemMemoryUsage sets the allocated-memory gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	if globalManager.enabled {
		globalManager.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the goroutine count gauge.
func UpdateSystemGoroutineCount(count int) {
	if globalManager.enabled {
		globalManager.systemGoroutineCount.Set(float64(count))
	}
}

// RecordSystemGCPauseTime observes a GC pause time in milliseconds.
func RecordSystemGCPauseTime(ms float64) {
	if globalManager.enabled {
		globalManager.systemGCPauseTime.Observe(ms)
	}
}
