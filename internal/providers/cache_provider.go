package providers

import (
	"emojidb/internal/storage/interfaces"
	"emojidb/internal/structures"
	"unsafe"

	"github.com/coocood/freecache"
)

// CacheProvider is an in-memory freecache tier in front of a durable store.
// freecache rejects entries larger than 1/1024 of its size; such blobs are
// only kept by the durable store.
type CacheProvider struct {
	cache  *freecache.Cache
	next   interfaces.CacheStoreInterface
	logger Logger
}

func NewCacheProvider(conf *structures.Config, logger Logger, durable interfaces.CacheStoreInterface) interfaces.CacheStoreInterface {
	if !conf.Cache.Enabled {
		logger.Infof(TypeCache, "Cache disabled")
		return &noopCache{}
	}
	if conf.Cache.MemorySize <= 0 {
		return durable
	}

	sizeBytes := conf.Cache.MemorySize * 1024 * 1024
	logger.Infof(TypeCache, "Memory cache initialized: %dMB", conf.Cache.MemorySize)

	return &CacheProvider{
		cache:  freecache.NewCache(sizeBytes),
		next:   durable,
		logger: logger,
	}
}

// unsafeStringToBytes converts string to []byte without allocation.
// freecache copies keys internally and never writes to them.
func unsafeStringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

func (c *CacheProvider) Get(key string) ([]byte, bool) {
	if val, err := c.cache.Get(unsafeStringToBytes(key)); err == nil {
		return val, true
	}
	val, ok := c.next.Get(key)
	if ok {
		c.remember(key, val)
	}
	return val, ok
}

func (c *CacheProvider) Put(key string, value []byte) error {
	if err := c.next.Put(key, value); err != nil {
		return err
	}
	c.remember(key, value)
	return nil
}

func (c *CacheProvider) remember(key string, value []byte) {
	if err := c.cache.Set(unsafeStringToBytes(key), value, 0); err != nil {
		c.logger.Debugf(TypeCache, "Memory cache skipped %s: %s", key, err)
	}
}

type noopCache struct{}

func (n *noopCache) Get(_ string) ([]byte, bool) { return nil, false }
func (n *noopCache) Put(_ string, _ []byte) error { return nil }
