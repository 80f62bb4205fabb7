package analyzer

import (
	"container/list"
	"sync"
	"time"

	"github.com/talhabaig007/PhishStop/internal/model"
)

// cacheEntry wraps one verdict with its expiry. Entries are never shared
// between two normalized URLs.
type cacheEntry struct {
	expiresAt time.Time
	key       string
	verdict   model.Verdict
}

// verdictCache memoizes verdicts per normalized URL with TTL expiry and a
// capacity bound. Eviction is strictly oldest-inserted first; re-putting a
// key re-enters it at the back of the queue.
type verdictCache struct {
	entries map[string]*list.Element
	order   *list.List // front = oldest inserted
	stopCh  chan struct{}
	now     func() time.Time
	ttl     time.Duration
	cap     int
	mu      sync.RWMutex
}

func newVerdictCache(ttl time.Duration, capacity int, now func() time.Time) *verdictCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	if now == nil {
		now = time.Now
	}

	c := &verdictCache{
		entries: make(map[string]*list.Element),
		order:   list.New(),
		stopCh:  make(chan struct{}),
		now:     now,
		ttl:     ttl,
		cap:     capacity,
	}

	go c.sweep()

	return c
}

// get returns the cached verdict if present and fresh. Expired entries are
// treated as absent and replaced, not merged, by the next put.
func (c *verdictCache) get(key string) (model.Verdict, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	elem, ok := c.entries[key]
	if !ok {
		return model.Verdict{}, false
	}

	entry := elem.Value.(*cacheEntry)
	if c.now().After(entry.expiresAt) {
		return model.Verdict{}, false
	}

	return entry.verdict, true
}

// put stores a verdict. Exceeding capacity silently evicts the
// oldest-inserted entries, TTL notwithstanding.
func (c *verdictCache) put(key string, v model.Verdict) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.order.Remove(elem)
		delete(c.entries, key)
	}

	c.entries[key] = c.order.PushBack(&cacheEntry{
		key:       key,
		verdict:   v,
		expiresAt: c.now().Add(c.ttl),
	})

	for len(c.entries) > c.cap {
		oldest := c.order.Front()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

func (c *verdictCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// sweep periodically drops expired entries so a quiet cache does not pin
// stale verdicts until capacity pressure pushes them out.
func (c *verdictCache) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := c.now()
			var next *list.Element
			for elem := c.order.Front(); elem != nil; elem = next {
				next = elem.Next()
				entry := elem.Value.(*cacheEntry)
				if now.After(entry.expiresAt) {
					c.order.Remove(elem)
					delete(c.entries, entry.key)
				}
			}
			c.mu.Unlock()
		}
	}
}

// Close stops the sweep goroutine.
func (c *verdictCache) Close() {
	close(c.stopCh)
}
