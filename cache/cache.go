package cache

import (
	"time"

	"github.com/patrickmn/go-cache"
)

type Cache struct {
	cache *cache.Cache
}

// New creates a cache whose entries expire after ttl by default.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &Cache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.cache.Get(key)
}

func (c *Cache) SetDefault(key string, value interface{}) {
	c.cache.Set(key, value, cache.DefaultExpiration)
}

// Remember returns the cached value for key, or calls load and caches its
// result with the default expiration. Errors are cached too so that a failing
// dependency is not hammered.
func (c *Cache) Remember(key string, load func() error) error {
	if v, ok := c.Get(key); ok {
		if v == nil {
			return nil
		}
		return v.(error)
	}
	err := load()
	c.SetDefault(key, err)
	return err
}
