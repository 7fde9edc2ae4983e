package cache

// EvictReason explains why an entry's bookkeeping was removed by a sweep.
type EvictReason int

const (
	// EvictSizeOrder — drained by the size-ordered phase after crossing
	// the age threshold.
	EvictSizeOrder EvictReason = iota
	// EvictRecency — removed oldest-first to bring the total under the
	// soft limit.
	EvictRecency
	// EvictStale — the weak handle no longer resolved; bookkeeping was
	// dropped without invoking Cleanup.
	EvictStale
)

// Metrics exposes cache-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
type Metrics interface {
	Evict(reason EvictReason)
	// Mark reports how many entries a reclassification pass moved into
	// the size-ordered index.
	Mark(n int)
	Size(entries int, bytes int64)
}

// NoopMetrics is a drop-in Metrics implementation that does nothing.
// Safe for concurrent use; the default when no backend is configured.
type NoopMetrics struct{}

func (NoopMetrics) Evict(EvictReason) {}
func (NoopMetrics) Mark(int)          {}
func (NoopMetrics) Size(int, int64)   {}

// Ensure NoopMetrics implements the Metrics interface at compile time.
var _ Metrics = NoopMetrics{}
