package nutrition

import (
	"context"
	"log"
	"time"
)

const (
	DefaultCacheTTL = 24 * time.Hour
	cacheKeyPrefix  = "nutrition:"
)

type Cache interface {
	Get(ctx context.Context, key string) (Facts, bool, error)
	Set(ctx context.Context, key string, facts Facts, ttl time.Duration) error
}

type CachedLookup struct {
	next  Lookup
	cache Cache
	ttl   time.Duration
}

func NewCachedLookup(next Lookup, cache Cache, ttl time.Duration) *CachedLookup {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedLookup{next: next, cache: cache, ttl: ttl}
}

// Lookup serves repeated queries from the cache. Cache failures are logged
// and fall through to the provider; misses are never cached.
func (lookup *CachedLookup) Lookup(ctx context.Context, query string) (Facts, error) {
	key := CacheKey(query)
	if lookup.cache != nil {
		facts, found, err := lookup.cache.Get(ctx, key)
		if err != nil {
			log.Printf("[nutrition] cache get %q failed: %v", key, err)
		} else if found {
			return facts, nil
		}
	}

	facts, err := lookup.next.Lookup(ctx, query)
	if err != nil {
		return Facts{}, err
	}

	if lookup.cache != nil {
		if err := lookup.cache.Set(ctx, key, facts, lookup.ttl); err != nil {
			log.Printf("[nutrition] cache set %q failed: %v", key, err)
		}
	}
	return facts, nil
}

func CacheKey(query string) string {
	return cacheKeyPrefix + NormalizeQuery(query)
}
