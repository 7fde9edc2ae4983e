package cache

import (
	"errors"
	"time"
)

var (
	// ErrInvalidLimit is returned by New when a byte limit is negative.
	ErrInvalidLimit = errors.New("cache: limits must be non-negative")
	// ErrLimitOrder is returned by New when HardLimit < SoftLimit.
	ErrLimitOrder = errors.New("cache: hard limit must be >= soft limit")
	// ErrInvalidInterval is returned by New when an interval or the
	// threshold age is negative.
	ErrInvalidInterval = errors.New("cache: intervals must be non-negative")
)

// Clock provides time in UnixNano; useful for deterministic tests.
type Clock interface{ NowUnixNano() int64 }

// Options configures the cache. Zero values are safe where documented;
// New applies defaults:
//   - nil Metrics       => NoopMetrics
//   - MarkInterval <= 0 => ThresholdAge
type Options struct {
	// SoftLimit is the byte total a sweep drives the cache down to.
	// It may be exceeded transiently between sweeps.
	SoftLimit int64

	// HardLimit is the byte total tolerated before Update forces a
	// synchronous sweep. Must be >= SoftLimit.
	HardLimit int64

	// SweepInterval is the period of the background eviction sweep.
	// Zero disables the periodic sweep; Update's hard-limit check and
	// manual Sweep calls still work.
	SweepInterval time.Duration

	// ThresholdAge is the age beyond which an entry becomes eligible for
	// size-ordered eviction instead of pure recency eviction. Zero keeps
	// the cache in plain-LRU mode.
	ThresholdAge time.Duration

	// MarkInterval is the period of the background reclassification pass
	// that moves aged entries into the size-ordered index. Defaults to
	// ThresholdAge when unset.
	MarkInterval time.Duration

	// Metrics receives Evict/Mark/Size signals; nil => NoopMetrics.
	Metrics Metrics

	// Clock allows overriding the time source (tests). Nil => time.Now().
	Clock Clock
}

// validate rejects configurations that would produce silently wrong
// eviction behavior.
func (o Options) validate() error {
	if o.SoftLimit < 0 || o.HardLimit < 0 {
		return ErrInvalidLimit
	}
	if o.HardLimit < o.SoftLimit {
		return ErrLimitOrder
	}
	if o.SweepInterval < 0 || o.ThresholdAge < 0 || o.MarkInterval < 0 {
		return ErrInvalidInterval
	}
	return nil
}
