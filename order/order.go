// Package order implements the size-ordered eviction candidate index.
package order

import (
	"cmp"

	"github.com/google/btree"
)

// Entry identifies one eviction candidate by the size and key it had at
// the moment of indexing. The engine resolves entries back to live
// bookkeeping through its own key map, so the index never aliases cache
// internals.
type Entry[K cmp.Ordered] struct {
	Size int64
	Key  K
}

// less orders candidates largest-size first; ties are broken by key
// ascending so that the order is a deterministic total order and two
// entries never collide.
func less[K cmp.Ordered](a, b Entry[K]) bool {
	if a.Size != b.Size {
		return a.Size > b.Size
	}
	return a.Key < b.Key
}

// btree degree; 16 keeps nodes around one cache line of entries without
// making rebalances expensive.
const degree = 16

// Index is an ordered set of (size, key) candidates with O(log n)
// insert/delete and in-order iteration. It is not goroutine-safe; the
// engine guards it with the cache lock.
type Index[K cmp.Ordered] struct {
	tr *btree.BTreeG[Entry[K]]
}

// New returns an empty index.
func New[K cmp.Ordered]() *Index[K] {
	return &Index[K]{tr: btree.NewG(degree, less[K])}
}

// Insert adds the (size, key) candidate. Re-inserting the same pair is a
// no-op.
func (ix *Index[K]) Insert(size int64, key K) {
	ix.tr.ReplaceOrInsert(Entry[K]{Size: size, Key: key})
}

// Delete removes the candidate recorded under exactly (size, key).
// Returns false if no such candidate exists.
func (ix *Index[K]) Delete(size int64, key K) bool {
	_, ok := ix.tr.Delete(Entry[K]{Size: size, Key: key})
	return ok
}

// Ascend visits candidates in eviction order (size descending, key
// ascending) until fn returns false.
func (ix *Index[K]) Ascend(fn func(Entry[K]) bool) {
	ix.tr.Ascend(fn)
}

// Clear drops all candidates.
func (ix *Index[K]) Clear() {
	ix.tr.Clear(false)
}

// Len returns the number of candidates.
func (ix *Index[K]) Len() int {
	return ix.tr.Len()
}
