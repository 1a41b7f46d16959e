package metrics

import "sync/atomic"

// Counter is a monotonically increasing event count.
type Counter struct {
	name string
	n    atomic.Int64
}

func newCounter(name string) *Counter {
	return &Counter{name: name}
}

// Inc adds one to the counter.
func (c *Counter) Inc() {
	if !Enabled() {
		return
	}
	c.n.Add(1)
}

// Value returns the current count.
func (c *Counter) Value() int64 {
	return c.n.Load()
}

// Name returns the counter name.
func (c *Counter) Name() string {
	return c.name
}

// Reset sets the counter back to zero.
func (c *Counter) Reset() {
	c.n.Store(0)
}

var (
	PreviewCacheHits   = newCounter("preview_cache_hits")
	PreviewCacheMisses = newCounter("preview_cache_misses")
	PreviewFetchErrors = newCounter("preview_fetch_errors")
	PreviewStaleDrops  = newCounter("preview_stale_drops")
)

// AllCounters returns all registered counters.
func AllCounters() []*Counter {
	return []*Counter{
		PreviewCacheHits,
		PreviewCacheMisses,
		PreviewFetchErrors,
		PreviewStaleDrops,
	}
}

// CounterValues returns a name → value snapshot of every counter.
func CounterValues() map[string]int64 {
	out := make(map[string]int64, 4)
	for _, c := range AllCounters() {
		out[c.name] = c.Value()
	}
	return out
}
