package suggest

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

type cacheKey struct {
	prefix string
	limit  int
	fuzzy  bool
}

// HotCache remembers recent completion results by folded prefix and limit.
// A nil *HotCache is a valid, always-missing cache.
type HotCache struct {
	lru    *lru.Cache[cacheKey, []Suggestion]
	hits   atomic.Int64
	misses atomic.Int64
}

// NewHotCache returns a cache of at most size results, or nil when size is
// not positive.
func NewHotCache(size int) *HotCache {
	if size <= 0 {
		return nil
	}
	c, err := lru.New[cacheKey, []Suggestion](size)
	if err != nil {
		return nil
	}
	return &HotCache{lru: c}
}

func (hc *HotCache) get(key cacheKey) ([]Suggestion, bool) {
	if hc == nil {
		return nil, false
	}
	s, ok := hc.lru.Get(key)
	if ok {
		hc.hits.Add(1)
	} else {
		hc.misses.Add(1)
	}
	return s, ok
}

func (hc *HotCache) add(key cacheKey, s []Suggestion) {
	if hc != nil {
		hc.lru.Add(key, s)
	}
}

// Purge drops every cached result.
func (hc *HotCache) Purge() {
	if hc != nil {
		hc.lru.Purge()
	}
}

// Stats reports the cache size and hit counters.
func (hc *HotCache) Stats() map[string]int {
	if hc == nil {
		return map[string]int{}
	}
	return map[string]int{
		"cacheEntries": hc.lru.Len(),
		"cacheHits":    int(hc.hits.Load()),
		"cacheMisses":  int(hc.misses.Load()),
	}
}
