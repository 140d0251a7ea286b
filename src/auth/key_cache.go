package auth

import (
	"time"

	"github.com/dgraph-io/ristretto"
)

const keySetEntry = "jwks"

// keyCache holds the issuer's signing keys until their TTL passes, so a
// rotated key set is picked up without a restart. The whole set is stored as
// one entry; an issuer's keys are always fetched and expire together.
type keyCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

func newKeyCache(ttl time.Duration) (*keyCache, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        100,
		MaxCost:            10,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	return &keyCache{cache: cache, ttl: ttl}, nil
}

func (c *keyCache) get(kid string) (interface{}, bool) {
	v, ok := c.cache.Get(keySetEntry)
	if !ok {
		return nil, false
	}
	key, ok := v.(map[string]interface{})[kid]
	return key, ok
}

func (c *keyCache) setAll(keys map[string]interface{}) {
	if c.ttl > 0 {
		c.cache.SetWithTTL(keySetEntry, keys, 1, c.ttl)
	} else {
		c.cache.Set(keySetEntry, keys, 1)
	}
	c.cache.Wait()
}
