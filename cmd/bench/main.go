// Command bench runs a synthetic workload against the cache and exposes optional pprof/Prometheus endpoints.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/IvanBrykalov/weakcache/cache"
	pmet "github.com/IvanBrykalov/weakcache/metrics/prom"
)

// blob is the benchmark resource; Cleanup just counts invocations.
type blob struct{ cleanups *atomic.Uint64 }

func (b *blob) Cleanup() { b.cleanups.Add(1) }

func main() {
	// ---- Flags ----
	var (
		soft      = flag.Int64("soft", 64<<20, "soft limit (bytes)")
		hard      = flag.Int64("hard", 96<<20, "hard limit (bytes)")
		sweep     = flag.Duration("sweep", 100*time.Millisecond, "eviction sweep interval (0 = disabled)")
		threshold = flag.Duration("threshold", time.Second, "age threshold for size-ordered eviction (0 = pure LRU)")
		mark      = flag.Duration("mark", 0, "threshold pass interval (0 = same as threshold)")

		workers   = flag.Int("workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
		duration  = flag.Duration("duration", 10*time.Second, "benchmark duration")
		updatePct = flag.Int("updates", 90, "update percentage [0..100]; the rest are removes")
		maxSize   = flag.Int("maxsize", 64<<10, "max element size (bytes)")

		keys  = flag.Int("keys", 1_000_000, "keyspace size")
		zipfS = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew)")
		zipfV = flag.Float64("zipf_v", 1.0, "Zipf v")
		seed  = flag.Int64("seed", time.Now().UnixNano(), "random seed")

		pprofAddr   = flag.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", ":8080", "serve Prometheus metrics at addr")
	)
	flag.Parse()

	// ---- pprof server (on DefaultServeMux) ----
	if *pprofAddr != "" {
		go func() {
			log.Printf("pprof: serving at %s", *pprofAddr)
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	// ---- Prometheus metrics (on DefaultServeMux) ----
	metrics := pmet.New(nil, "weakcache", "bench", nil)
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Printf("metrics: serving at %s", *metricsAddr)
		log.Println(http.ListenAndServe(*metricsAddr, nil))
	}()

	// ---- Build cache ----
	c, err := cache.New[string, *blob](cache.Options{
		SoftLimit:     *soft,
		HardLimit:     *hard,
		SweepInterval: *sweep,
		ThresholdAge:  *threshold,
		MarkInterval:  *mark,
		Metrics:       metrics,
	})
	if err != nil {
		log.Fatalf("cache.New: %v", err)
	}
	defer func() { _ = c.Close() }()

	var cleanups atomic.Uint64

	// ---- Snapshot flags for goroutines ----
	updatePctVal := *updatePct
	maxSizeVal := *maxSize
	keysMax := uint64(*keys - 1)
	seedBase := *seed
	zipfSVal := *zipfS
	zipfVVal := *zipfV
	workersN := *workers
	if workersN <= 0 {
		workersN = 1
	}

	// ---- Load generation ----
	var updates, removes, total uint64
	done := make(chan struct{})
	time.AfterFunc(*duration, func() { close(done) })

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(workersN)
	for w := 0; w < workersN; w++ {
		go func(id int) {
			defer wg.Done()

			// Each worker gets its own RNG + Zipf (rand.Rand is NOT goroutine-safe).
			localR := rand.New(rand.NewSource(seedBase + int64(id)*9973))
			localZipf := rand.NewZipf(localR, zipfSVal, zipfVVal, keysMax)

			keyByZipf := func() string {
				return "k:" + strconv.FormatUint(localZipf.Uint64(), 10)
			}

			for {
				select {
				case <-done:
					return
				default:
				}

				atomic.AddUint64(&total, 1)
				if int(localR.Int31n(100)) < updatePctVal {
					atomic.AddUint64(&updates, 1)
					size := int64(1 + localR.Intn(maxSizeVal))
					c.Update(keyByZipf(), cache.Strong(&blob{cleanups: &cleanups}), size)
				} else {
					atomic.AddUint64(&removes, 1)
					c.Remove(keyByZipf())
				}
			}
		}(w)
	}
	wg.Wait()
	elapsed := time.Since(start)

	// ---- Report ----
	ops := atomic.LoadUint64(&total)
	updatesN := atomic.LoadUint64(&updates)
	removesN := atomic.LoadUint64(&removes)

	fmt.Printf("soft=%d hard=%d sweep=%v threshold=%v workers=%d keys=%d dur=%v seed=%d\n",
		*soft, *hard, *sweep, *threshold, workersN, *keys, elapsed, seedBase)
	fmt.Printf("ops=%d (%.0f ops/s)  updates=%d  removes=%d  cleanups=%d\n",
		ops, float64(ops)/elapsed.Seconds(), updatesN, removesN, cleanups.Load())
	fmt.Printf("Len()=%d  Size()=%d\n", c.Len(), c.Size())
}
