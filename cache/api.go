package cache

import "cmp"

// Key constrains cache keys. Keys must be totally ordered (not merely
// comparable) because the size-ordered index breaks size ties by key
// to keep its eviction order deterministic.
type Key = cmp.Ordered

// Cleanable is the contract a cached object must satisfy. Cleanup releases
// whatever resource the object privately owns. The cache invokes it at most
// once per eviction, with no arguments, outside the cache lock; failures
// inside Cleanup are the owner's concern and are never caught here.
type Cleanable interface {
	Cleanup()
}

// Ref is a weak observation handle: it can check whether the referenced
// object is still alive and produce a temporary strong reference, without
// extending the object's lifetime. The cache never upgrades a Ref to
// ownership. A Ref that stops resolving is treated as an implicit removal,
// not an error.
type Ref[V any] interface {
	// Get resolves the handle. ok is false once the owner has released
	// the object.
	Get() (v V, ok bool)
}

// Cache tracks externally owned resources by weak reference and reclaims
// them under two budgets: a soft limit enforced by periodic sweeps and a
// hard limit enforced synchronously on Update.
// All methods are safe for concurrent use by multiple goroutines.
type Cache[K Key, V Cleanable] interface {
	// Update registers k or refreshes its registration: the reported size
	// and the last-access time are replaced and the entry becomes the most
	// recently used. If the tracked total then exceeds the hard limit, a
	// sweep runs synchronously before Update returns, with k protected
	// from purge.
	Update(k K, ref Ref[V], size int64)

	// Remove drops the bookkeeping for k without invoking Cleanup.
	// Removing an absent key is a no-op.
	Remove(k K)

	// Sweep runs one eviction pass by hand: size-ordered candidates are
	// drained first, then the oldest entries go until the total is within
	// the soft limit.
	Sweep()

	// Len returns the number of tracked entries.
	Len() int

	// Size returns the tracked total in bytes.
	Size() int64

	// Close stops the background sweeps and waits for them to finish.
	// Operations after Close are ignored. Close is idempotent.
	Close() error
}
