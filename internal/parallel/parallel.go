// Package parallel provides the fork/join primitives used by the hot loops of
// the WHIR core: equality-table expansion, coefficient/evaluation butterflies,
// coefficient folding and the sumcheck table updates. It mirrors the shape of gnark-crypto's internal
// parallel helpers (range-split Execute, rayon-style Join) without pulling in
// a scheduler of its own; golang.org/x/sync/errgroup supplies the goroutine
// bookkeeping.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Threshold is the minimum amount of independent work (slice length, or
// remaining hypercube dimension) below which a call runs sequentially rather
// than spawning goroutines. It mirrors the PARALLEL_THRESHOLD ~= 2^10 named in
// spec.md's concurrency model.
const Threshold = 1 << 10

// Execute splits [0, n) into contiguous chunks and runs work on each chunk
// concurrently, one goroutine per available core. work must only touch the
// [start, end) slice of whatever backing array the caller closed over; chunks
// never overlap, so no synchronization beyond the final join is required.
func Execute(n int, work func(start, end int)) {
	if n == 0 {
		return
	}
	numCPU := runtime.NumCPU()
	if n < Threshold || numCPU <= 1 {
		work(0, n)
		return
	}

	nbChunks := numCPU
	chunkSize := (n + nbChunks - 1) / nbChunks

	var g errgroup.Group
	for start := 0; start < n; start += chunkSize {
		start := start
		end := start + chunkSize
		if end > n {
			end = n
		}
		g.Go(func() error {
			work(start, end)
			return nil
		})
	}
	_ = g.Wait()
}

// Join runs left and right concurrently when remaining work exceeds
// Threshold, and sequentially otherwise. left and right must touch disjoint
// memory; Join is the only synchronization point.
func Join(remaining int, left, right func()) {
	if remaining <= Threshold {
		left()
		right()
		return
	}
	var g errgroup.Group
	g.Go(func() error {
		left()
		return nil
	})
	right()
	_ = g.Wait()
}
