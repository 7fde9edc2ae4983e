package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/IvanBrykalov/weakcache/internal/util"
	"github.com/IvanBrykalov/weakcache/order"
)

// cache is the eviction engine. One mutex guards the key map, the recency
// list, the size-ordered index, and the byte total; the critical sections
// are kept as short as possible and Cleanup always runs after unlock.
type cache[K Key, V Cleanable] struct {
	opt Options

	// ---- guarded by mu ----
	mu     sync.Mutex
	byKey  map[K]*element[K, V]
	byAge  recencyList[K, V]
	bySize *order.Index[K]
	total  int64 // sum of tracked sizes, maintained incrementally

	closed atomic.Bool
	stop   chan struct{}
	wg     sync.WaitGroup

	// ---- hot counters (separate cache lines to avoid false sharing) ----
	_       util.CacheLinePad
	updates util.PaddedAtomicUint64
	evicts  util.PaddedAtomicUint64
}

// New constructs a cache with the provided Options and starts the
// background sweeps that are enabled by them. It fails fast on a
// configuration that would evict incorrectly (negative limits, hard limit
// below soft limit, negative intervals).
func New[K Key, V Cleanable](opt Options) (Cache[K, V], error) {
	if err := opt.validate(); err != nil {
		return nil, err
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	if opt.MarkInterval <= 0 {
		opt.MarkInterval = opt.ThresholdAge
	}

	c := &cache[K, V]{
		opt:    opt,
		byKey:  make(map[K]*element[K, V]),
		bySize: order.New[K](),
		stop:   make(chan struct{}),
	}

	if opt.SweepInterval > 0 {
		c.wg.Add(1)
		go c.sweepLoop(opt.SweepInterval)
	}
	if opt.ThresholdAge > 0 {
		c.wg.Add(1)
		go c.markLoop(opt.MarkInterval)
	}
	return c, nil
}

// ---- Cache[K,V] implementation ----

// Update registers k or refreshes it: any stale size-index entry is erased,
// the size and timestamp are replaced, and the element moves to the newest
// end of the recency list. A hard-limit overflow triggers a synchronous
// sweep (after the lock is released) with k protected from purge.
func (c *cache[K, V]) Update(k K, ref Ref[V], size int64) {
	if c.closed.Load() {
		return
	}
	c.updates.Add(1)

	c.mu.Lock()
	el, ok := c.byKey[k]
	if ok {
		if el.marked {
			el.marked = false
			c.bySize.Delete(el.size, el.key)
		}
		c.byAge.remove(el)
		c.total -= el.size
	} else {
		el = &element[K, V]{key: k}
		c.byKey[k] = el
	}
	el.ref = ref
	el.size = size
	el.lastAccess = c.now()
	c.byAge.pushBack(el)
	c.total += size

	over := c.total > c.opt.HardLimit
	entries, bytes := len(c.byKey), c.total
	c.mu.Unlock()

	c.opt.Metrics.Size(entries, bytes)
	if over {
		c.evict(&k)
	}
}

// Remove drops the bookkeeping for k. Cleanup is never invoked here; the
// owner keeps its object. Removing an absent key is a no-op, so calling
// Remove twice is safe.
func (c *cache[K, V]) Remove(k K) {
	if c.closed.Load() {
		return
	}

	c.mu.Lock()
	el, ok := c.byKey[k]
	if !ok {
		c.mu.Unlock()
		return
	}
	if el.marked {
		c.bySize.Delete(el.size, el.key)
	}
	c.byAge.remove(el)
	delete(c.byKey, k)
	c.total -= el.size
	entries, bytes := len(c.byKey), c.total
	c.mu.Unlock()

	c.opt.Metrics.Size(entries, bytes)
}

// Sweep runs one eviction pass by hand.
func (c *cache[K, V]) Sweep() {
	if c.closed.Load() {
		return
	}
	c.evict(nil)
}

// Len returns the number of tracked entries.
func (c *cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.byKey)
}

// Size returns the tracked total in bytes.
func (c *cache[K, V]) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Close signals both background loops, waits for them to exit, and marks
// the cache closed. No sweep runs against the cache after Close returns.
func (c *cache[K, V]) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	close(c.stop)
	c.wg.Wait()
	return nil
}

// ---- sweeps ----

// markStale reclassifies aged elements for size-ordered eviction. The
// recency list is age-ordered, so the walk stops at the first unmarked
// element still inside the threshold: everything behind it is fresher.
// Cost is O(k) in newly qualifying elements, not O(n).
func (c *cache[K, V]) markStale(now int64) {
	th := int64(c.opt.ThresholdAge)
	if th <= 0 {
		return
	}

	c.mu.Lock()
	n := 0
	for el := c.byAge.front(); el != nil; el = el.next {
		if el.marked {
			continue
		}
		if now-el.lastAccess < th {
			break
		}
		el.marked = true
		c.bySize.Insert(el.size, el.key)
		n++
	}
	c.mu.Unlock()

	if n > 0 {
		c.opt.Metrics.Mark(n)
	}
}

// evict is the single eviction routine shared by the periodic sweep, the
// manual Sweep, and the hard-limit path (which passes the just-updated key
// as protected).
//
// Phase 1 drains the size-ordered index completely, largest first; the
// soft limit does not apply there — once an element has crossed the age
// threshold it is always reclaimed. Phase 2 walks the recency list
// oldest-first until the total is within the soft limit. Cleanup on the
// collected live handles runs strictly after the lock is released so owner
// teardown can call back into the cache without deadlock.
func (c *cache[K, V]) evict(protected *K) {
	var clean []V

	c.mu.Lock()
	if c.bySize.Len() > 0 {
		c.bySize.Ascend(func(e order.Entry[K]) bool {
			el, ok := c.byKey[e.Key]
			if !ok {
				return true
			}
			if v, live := el.ref.Get(); live {
				clean = append(clean, v)
				c.opt.Metrics.Evict(EvictSizeOrder)
			} else {
				c.opt.Metrics.Evict(EvictStale)
			}
			c.byAge.remove(el)
			delete(c.byKey, el.key)
			c.total -= el.size
			return true
		})
		c.bySize.Clear()
	}

	for c.total > c.opt.SoftLimit {
		el := c.byAge.popFront()
		if el == nil {
			break
		}
		delete(c.byKey, el.key)
		if el.marked {
			// Already accounted for in phase 1.
			continue
		}
		c.total -= el.size
		if protected != nil && el.key == *protected {
			// The key whose Update triggered this sweep is the newest
			// element, so the walk reaches it only when nothing else is
			// left to shrink. Its bookkeeping goes, but the owner keeps
			// the object: no Cleanup for the entry that was just handed
			// to us.
			continue
		}
		if v, live := el.ref.Get(); live {
			clean = append(clean, v)
			c.opt.Metrics.Evict(EvictRecency)
		} else {
			c.opt.Metrics.Evict(EvictStale)
		}
	}
	entries, bytes := len(c.byKey), c.total
	c.mu.Unlock()

	c.evicts.Add(uint64(len(clean)))
	c.opt.Metrics.Size(entries, bytes)

	for _, v := range clean {
		v.Cleanup()
	}
}

// ---- background loops ----

func (c *cache[K, V]) sweepLoop(every time.Duration) {
	defer c.wg.Done()
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-t.C:
			c.evict(nil)
		}
	}
}

func (c *cache[K, V]) markLoop(every time.Duration) {
	defer c.wg.Done()
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-t.C:
			c.markStale(c.now())
		}
	}
}

// ---- helpers ----

func (c *cache[K, V]) now() int64 {
	if c.opt.Clock != nil {
		return c.opt.Clock.NowUnixNano()
	}
	return time.Now().UnixNano()
}
