package orchestrator

import (
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/platinummonkey/flowsearch/pkg/search"
)

// CacheStats holds result cache statistics
type CacheStats struct {
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	Entries int     `json:"entries"`
	HitRate float64 `json:"hitRate"`
}

// resultCache is an in-memory LRU of search results with TTL expiry.
// Keys embed the flow revision, so results of a replaced graph are never served.
type resultCache struct {
	cache  *lru.LRU[string, *Results]
	hits   atomic.Int64
	misses atomic.Int64
}

func newResultCache(size int, ttl time.Duration) *resultCache {
	return &resultCache{
		cache: lru.NewLRU[string, *Results](size, nil, ttl),
	}
}

func cacheKey(revision string, query *search.Query) string {
	return revision + "\x00" + query.Key()
}

func (c *resultCache) get(key string) (*Results, bool) {
	results, ok := c.cache.Get(key)
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return results, true
}

func (c *resultCache) add(key string, results *Results) {
	c.cache.Add(key, results)
}

func (c *resultCache) purge() {
	c.cache.Purge()
}

func (c *resultCache) stats() CacheStats {
	stats := CacheStats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: c.cache.Len(),
	}
	if total := stats.Hits + stats.Misses; total > 0 {
		stats.HitRate = float64(stats.Hits) / float64(total)
	}
	return stats
}
