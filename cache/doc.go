// Package cache provides a bounded-memory eviction cache over weak handles.
// It tracks resources owned elsewhere — the cache keeps only bookkeeping
// (key, size, timestamps) and a weak observation handle — and reclaims them
// by invoking the owner object's Cleanup, never by freeing memory itself.
//
// # Design
//
//   - Budgets: a soft limit is enforced by a periodic sweep (the tracked
//     total may exceed it transiently between sweeps); a hard limit is
//     enforced synchronously — an Update that pushes the total past it
//     runs a sweep before returning.
//
//   - Policies: below the age threshold eviction is strict LRU. Once an
//     element's age crosses Options.ThresholdAge, a background pass moves
//     it into a size-ordered index, and every sweep drains that index
//     first — largest element first, ties broken by key — before falling
//     back to recency order. ThresholdAge = 0 keeps the cache in plain-LRU
//     mode.
//
//   - Storage: a map[K]*element for lookups plus an intrusive doubly
//     linked list ordered by last access (front = oldest). The aged subset
//     lives additionally in a B-tree keyed (size desc, key asc), giving
//     O(log n) reclassification and deterministic drain order.
//
//   - Concurrency: one mutex guards all bookkeeping; critical sections are
//     minimal. Cleanup on evicted objects always runs after the lock is
//     released, so an owner's teardown may call back into the cache.
//     Two background goroutines (eviction sweep, threshold pass) are
//     joined synchronously by Close.
//
//   - Weak handles: Ref resolves to a live object or reports loss. A dead
//     handle is not an error — the sweep drops the bookkeeping silently
//     and does not invoke Cleanup. Weak adapts a runtime weak pointer;
//     Strong is for owners that manage lifetime explicitly.
//
//   - Metrics: Options.Metrics receives Evict/Mark/Size signals.
//     NoopMetrics is the default; a Prometheus adapter lives in
//     metrics/prom.
//
// # Basic usage
//
//	type blob struct{ data []byte }
//
//	func (b *blob) Cleanup() { b.data = nil }
//
//	c, err := cache.New[int, *blob](cache.Options{
//	    SoftLimit:     64 << 20,
//	    HardLimit:     96 << 20,
//	    SweepInterval: time.Minute,
//	    ThresholdAge:  time.Hour,
//	})
//	if err != nil {
//	    // limits/intervals were inconsistent
//	}
//	defer c.Close()
//
//	b := &blob{data: make([]byte, 1<<20)}
//	c.Update(42, cache.Weak(b), 1<<20)
//	// ... later, when the entry is evicted, b.Cleanup runs — unless the
//	// owner already dropped b, in which case the entry is dropped silently.
//	c.Remove(42) // bookkeeping only, no Cleanup
//
// All methods on Cache are safe for concurrent use. Update and Remove are
// O(log n) when the size index is involved and O(1) otherwise.
package cache
