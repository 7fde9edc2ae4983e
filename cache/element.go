package cache

// element is an intrusive doubly linked list node owned by the cache.
// It carries the bookkeeping for one tracked object: the key, the weak
// handle, the last reported size, and the last access timestamp. The
// cache never owns the object itself; the handle is resolved only at
// eviction time.
type element[K Key, V Cleanable] struct {
	key K
	ref Ref[V]

	// Intrusive list links: front is oldest, back is newest.
	prev *element[K, V]
	next *element[K, V]

	// Last reported size in bytes. Taken as given; the cache does not
	// validate or clamp it.
	size int64

	// Last insert/update time in UnixNano.
	lastAccess int64

	// Set once the element's age has crossed ThresholdAge and it has
	// been indexed for size-ordered eviction. Every Update for the key
	// clears the flag and removes the stale index entry before
	// re-inserting, so the index never disagrees with the element.
	marked bool
}
