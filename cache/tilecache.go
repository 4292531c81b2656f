package cache

import "sync"

// Entry is one cached value plus its accounted byte cost.
type Entry[V any] struct {
	Value V
	Bytes int64
}

// TileCache is a byte-budget LRU keyed by tile id, generalized from the
// teacher's pixmap LayerCache ("pixmap keyed by content hash" becomes
// "tile content keyed by TileID"): same lruList-based eviction, same
// atomic-style hit/miss/eviction counters (kept as plain fields guarded
// by the cache's own mutex here, since every access already takes the
// lock), same byte-budget-with-headroom accounting. Budget and overflow
// headroom map to the engine's cache_bytes / maximum_cache_overflow_bytes.
type TileCache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*cacheElement[K, V]
	order   *lruList[K]

	size            int64
	budget          int64
	overflowHeadroom int64

	hits, misses, evictions uint64

	// onEvict, if set, is called with a key's value right before it is
	// dropped from the cache by budget pressure, so the caller can release
	// whatever resident resource the value stands for.
	onEvict func(key K, value V)
}

type cacheElement[K comparable, V any] struct {
	value V
	bytes int64
	node  *lruNode[K]
}

// New creates a cache with the given soft budget and hard overflow
// headroom above it — the working set may transiently exceed budget by
// up to overflowHeadroom bytes before eviction is forced to keep up.
func New[K comparable, V any](budget, overflowHeadroom int64) *TileCache[K, V] {
	if budget < 0 {
		budget = 0
	}
	if overflowHeadroom < 0 {
		overflowHeadroom = 0
	}
	return &TileCache[K, V]{
		entries:          make(map[K]*cacheElement[K, V]),
		order:            newLRUList[K](),
		budget:           budget,
		overflowHeadroom: overflowHeadroom,
	}
}

// SetEvictHandler installs fn to be called, synchronously and while the
// cache's own lock is held, whenever budget pressure drops a key. fn must
// not call back into the cache.
func (c *TileCache[K, V]) SetEvictHandler(fn func(key K, value V)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEvict = fn
}

// Get retrieves key's cached value, marking it most recently used on hit.
func (c *TileCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.order.MoveToFront(el.node)
	c.hits++
	return el.value, true
}

// Put inserts or replaces key's cached value, evicting least-recently-used
// entries first if the hard limit (budget+overflowHeadroom) would
// otherwise be exceeded. A single entry larger than the hard limit is
// rejected rather than admitted.
func (c *TileCache[K, V]) Put(key K, value V, bytes int64) {
	if bytes < 0 {
		bytes = 0
	}
	hardLimit := c.budget + c.overflowHeadroom

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.entries[key]; ok {
		c.size -= existing.bytes
		c.order.Remove(existing.node)
		delete(c.entries, key)
	}

	if bytes > hardLimit && hardLimit > 0 {
		return
	}

	c.evictUntil(hardLimit - bytes)

	node := c.order.PushFront(key)
	c.entries[key] = &cacheElement[K, V]{value: value, bytes: bytes, node: node}
	c.size += bytes
}

// evictUntil removes least-recently-used entries until size <= target.
// Caller must hold c.mu.
func (c *TileCache[K, V]) evictUntil(target int64) {
	for c.size > target {
		key, ok := c.order.RemoveOldest()
		if !ok {
			return
		}
		el := c.entries[key]
		delete(c.entries, key)
		c.size -= el.bytes
		c.evictions++
		if c.onEvict != nil {
			c.onEvict(key, el.value)
		}
	}
}

// Remove evicts key unconditionally, e.g. on expiry.
func (c *TileCache[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.entries[key]
	if !ok {
		return
	}
	c.order.Remove(el.node)
	delete(c.entries, key)
	c.size -= el.bytes
}

// SetBudget changes the soft budget and hard overflow headroom at
// runtime, evicting immediately if the new hard limit is now below the
// current resident size. Negative values are clamped to 0, matching New.
func (c *TileCache[K, V]) SetBudget(budget, overflowHeadroom int64) {
	if budget < 0 {
		budget = 0
	}
	if overflowHeadroom < 0 {
		overflowHeadroom = 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.budget = budget
	c.overflowHeadroom = overflowHeadroom
	c.evictUntil(c.budget + c.overflowHeadroom)
}

// OverBudget reports whether the cache is currently using more than its
// soft byte budget — the trigger condition for adaptive SSE relaxation
// (processing.go).
func (c *TileCache[K, V]) OverBudget() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size > c.budget
}

// Stats is a point-in-time snapshot of cache bookkeeping.
type Stats struct {
	Size, Budget, OverflowHeadroom int64
	Entries                        int
	Hits, Misses, Evictions        uint64
}

func (c *TileCache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Size:             c.size,
		Budget:           c.budget,
		OverflowHeadroom: c.overflowHeadroom,
		Entries:          len(c.entries),
		Hits:             c.hits,
		Misses:           c.misses,
		Evictions:        c.evictions,
	}
}
