package providers

import (
	"emojidb/internal/storage/interfaces"
	"emojidb/internal/structures"
)

// MetricsCacheProvider wraps a CacheStoreInterface and increments
// hit/miss counters on every Get call.
type MetricsCacheProvider struct {
	inner   interfaces.CacheStoreInterface
	metrics MetricsProviderInterface
}

func (c *MetricsCacheProvider) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	if ok {
		c.metrics.IncCacheHits()
	} else {
		c.metrics.IncCacheMisses()
	}
	return val, ok
}

func (c *MetricsCacheProvider) Put(key string, value []byte) error {
	return c.inner.Put(key, value)
}

// NewInstrumentedCacheProvider creates a cache store wrapped with metrics instrumentation.
// When the cache is disabled the plain noopCache is returned so that no
// phantom misses are counted.
func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface, durable interfaces.CacheStoreInterface) interfaces.CacheStoreInterface {
	inner := NewCacheProvider(conf, logger, durable)
	if !conf.Cache.Enabled {
		return inner
	}
	return &MetricsCacheProvider{
		inner:   inner,
		metrics: metrics,
	}
}
