package cache

import "weak"

// weakRef adapts a runtime weak pointer to the Ref contract. It resolves
// until the garbage collector reclaims the pointee, i.e. until the owner
// drops its last strong reference.
type weakRef[T any] struct {
	p weak.Pointer[T]
}

func (r weakRef[T]) Get() (*T, bool) {
	v := r.p.Value()
	return v, v != nil
}

// Weak returns a Ref backed by a runtime weak pointer to v. The cache
// observes the object without keeping it alive; once the owner's last
// strong reference is collected the Ref stops resolving and the entry is
// dropped on the next sweep without Cleanup being invoked.
func Weak[T any](v *T) Ref[*T] {
	return weakRef[T]{p: weak.Make(v)}
}

// strongRef always resolves. For owners that manage object lifetime
// explicitly (Remove before release) and for deterministic tests.
type strongRef[V any] struct {
	v V
}

func (r strongRef[V]) Get() (V, bool) { return r.v, true }

// Strong returns a Ref that always resolves to v.
func Strong[V any](v V) Ref[V] {
	return strongRef[V]{v: v}
}
