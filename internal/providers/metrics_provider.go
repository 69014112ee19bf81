package providers

import (
	"emojidb/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncCacheHits()
	IncCacheMisses()
	IncCacheCorrupt()
	IncCacheWriteFailures()
	IncRebuilds()
	ObserveBuildDuration(duration time.Duration)
	SetRecordsTotal(count int)
}

type MetricsProvider struct {
	cacheHits          prometheus.Counter
	cacheMisses        prometheus.Counter
	cacheCorrupt       prometheus.Counter
	cacheWriteFailures prometheus.Counter
	rebuilds           prometheus.Counter
	buildDuration      prometheus.Histogram
	recordsTotal       prometheus.Gauge
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncCacheCorrupt() {
	m.cacheCorrupt.Inc()
}

func (m *MetricsProvider) IncCacheWriteFailures() {
	m.cacheWriteFailures.Inc()
}

func (m *MetricsProvider) IncRebuilds() {
	m.rebuilds.Inc()
}

func (m *MetricsProvider) ObserveBuildDuration(duration time.Duration) {
	m.buildDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetRecordsTotal(count int) {
	m.recordsTotal.Set(float64(count))
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "emojidb_cache_hits_total",
			Help: "Total number of durable cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "emojidb_cache_misses_total",
			Help: "Total number of durable cache misses",
		}),

		cacheCorrupt: promauto.NewCounter(prometheus.CounterOpts{
			Name: "emojidb_cache_corrupt_total",
			Help: "Total number of discarded cache blobs",
		}),

		cacheWriteFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "emojidb_cache_write_failures_total",
			Help: "Total number of failed cache writes",
		}),

		rebuilds: promauto.NewCounter(prometheus.CounterOpts{
			Name: "emojidb_rebuilds_total",
			Help: "Total number of database rebuilds from source",
		}),

		buildDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "emojidb_build_duration_seconds",
			Help:    "Duration of database rebuilds in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		recordsTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "emojidb_records_total",
			Help: "Number of emoji records in the loaded database",
		}),
	}
}

// WriteMetrics dumps the default gatherer to the configured textfile, for
// node_exporter's textfile collector. No-op when metrics are disabled.
func WriteMetrics(conf *structures.Config) error {
	if !conf.Metrics.Enabled || conf.Metrics.Textfile == "" {
		return nil
	}
	return prometheus.WriteToTextfile(conf.Metrics.Textfile, prometheus.DefaultGatherer)
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncCacheHits()                           {}
func (n *noopMetrics) IncCacheMisses()                         {}
func (n *noopMetrics) IncCacheCorrupt()                        {}
func (n *noopMetrics) IncCacheWriteFailures()                  {}
func (n *noopMetrics) IncRebuilds()                            {}
func (n *noopMetrics) ObserveBuildDuration(_ time.Duration)    {}
func (n *noopMetrics) SetRecordsTotal(_ int)                   {}
