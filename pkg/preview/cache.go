package preview

import (
	"sort"
	"sync"
)

// Cache holds extracted overviews keyed by document reference.
// Entries are never evicted or replaced: the first stored overview for a
// reference is kept for the lifetime of the cache. Thread-safe.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Overview
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]Overview)}
}

// Get returns the cached overview for ref.
func (c *Cache) Get(ref string) (Overview, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ov, ok := c.entries[ref]
	return ov, ok
}

// Put stores ov for ref unless ref is already cached. It reports whether ov
// was stored.
func (c *Cache) Put(ref string, ov Overview) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[ref]; ok {
		return false
	}
	c.entries[ref] = ov
	return true
}

// Len returns the number of cached references.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Refs returns the cached references, sorted.
func (c *Cache) Refs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	refs := make([]string, 0, len(c.entries))
	for ref := range c.entries {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs
}
