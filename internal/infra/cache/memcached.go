package cache

import (
	"github.com/bradfitz/gomemcache/memcache"

	"github.com/opensamaj/samiti/internal/domain"
)

// MemcachedCache adapts a memcache client to the reader's view cache.
type MemcachedCache struct {
	mc  *memcache.Client
	ttl int32
}

func NewMemcachedCache(mc *memcache.Client, ttlSeconds int32) *MemcachedCache {
	return &MemcachedCache{mc: mc, ttl: ttlSeconds}
}

func (c *MemcachedCache) Get(key string) ([]byte, error) {
	item, err := c.mc.Get(key)
	if err != nil {
		if err == memcache.ErrCacheMiss {
			return nil, domain.NotFoundError{Resource: "cache entry"}
		}
		return nil, err
	}
	return item.Value, nil
}

func (c *MemcachedCache) Set(key string, value []byte) error {
	return c.mc.Set(&memcache.Item{Key: key, Value: value, Expiration: c.ttl})
}

func (c *MemcachedCache) Delete(key string) error {
	err := c.mc.Delete(key)
	if err == memcache.ErrCacheMiss {
		return nil
	}
	return err
}
