package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cacheMetricsTestMetrics struct {
	hits   int
	misses int
}

func (m *cacheMetricsTestMetrics) IncCacheHits()                        { m.hits++ }
func (m *cacheMetricsTestMetrics) IncCacheMisses()                      { m.misses++ }
func (m *cacheMetricsTestMetrics) IncCacheCorrupt()                     {}
func (m *cacheMetricsTestMetrics) IncCacheWriteFailures()               {}
func (m *cacheMetricsTestMetrics) IncRebuilds()                         {}
func (m *cacheMetricsTestMetrics) ObserveBuildDuration(_ time.Duration) {}
func (m *cacheMetricsTestMetrics) SetRecordsTotal(_ int)                {}

func TestMetricsCacheProvider_Hit(t *testing.T) {
	inner := newCacheTestStore()
	inner.data["key1"] = []byte("val1")
	metrics := &cacheMetricsTestMetrics{}
	cache := &MetricsCacheProvider{inner: inner, metrics: metrics}

	val, ok := cache.Get("key1")
	assert.True(t, ok)
	assert.Equal(t, []byte("val1"), val)
	assert.Equal(t, 1, metrics.hits)
	assert.Equal(t, 0, metrics.misses)
}

func TestMetricsCacheProvider_Miss(t *testing.T) {
	metrics := &cacheMetricsTestMetrics{}
	cache := &MetricsCacheProvider{inner: newCacheTestStore(), metrics: metrics}

	val, ok := cache.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, val)
	assert.Equal(t, 0, metrics.hits)
	assert.Equal(t, 1, metrics.misses)
}

func TestMetricsCacheProvider_PutDelegates(t *testing.T) {
	inner := newCacheTestStore()
	cache := &MetricsCacheProvider{inner: inner, metrics: &cacheMetricsTestMetrics{}}

	require.NoError(t, cache.Put("key2", []byte("val2")))
	assert.Equal(t, []byte("val2"), inner.data["key2"])
}

func TestMetricsCacheProvider_MultipleOperations(t *testing.T) {
	inner := newCacheTestStore()
	inner.data["a"] = []byte("1")
	metrics := &cacheMetricsTestMetrics{}
	cache := &MetricsCacheProvider{inner: inner, metrics: metrics}

	cache.Get("a") // hit
	cache.Get("b") // miss
	cache.Get("a") // hit
	cache.Get("c") // miss

	assert.Equal(t, 2, metrics.hits)
	assert.Equal(t, 2, metrics.misses)
}

func TestNewInstrumentedCacheProvider_DisabledSkipsMetrics(t *testing.T) {
	metrics := &cacheMetricsTestMetrics{}
	c := NewInstrumentedCacheProvider(cacheConfig(false, 0), &cacheTestLogger{}, metrics, newCacheTestStore())

	c.Get("a")
	assert.IsType(t, &noopCache{}, c)
	assert.Equal(t, 0, metrics.misses)
}

func TestNewInstrumentedCacheProvider_Enabled(t *testing.T) {
	metrics := &cacheMetricsTestMetrics{}
	c := NewInstrumentedCacheProvider(cacheConfig(true, 0), &cacheTestLogger{}, metrics, newCacheTestStore())

	assert.IsType(t, &MetricsCacheProvider{}, c)
	c.Get("a")
	assert.Equal(t, 1, metrics.misses)
}
