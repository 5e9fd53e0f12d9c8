// Package workpool provides the bounded goroutine pool used for the
// data-parallel passes the mesh optimizer runs: the prefix scan that
// compacts unconnected vertices during ring construction, and
// decimation's eligibility pre-pass. None of these synchronize with each other mid-pass — each
// worker only ever writes to slots no other worker touches — so a
// simple fixed-size fan-out over disjoint index ranges is sufficient;
// no external queue or errgroup library is needed (and none appears
// anywhere in the reference corpus to ground one on).
package workpool

import (
	"runtime"
	"sync"
)

// Pool bounds how many goroutines a Range call may use concurrently.
type Pool struct {
	size int
}

// New returns a Pool with the given worker count. A non-positive size
// defaults to GOMAXPROCS.
func New(size int) *Pool {
	if size <= 0 {
		size = runtime.GOMAXPROCS(0)
	}
	return &Pool{size: size}
}

// Range partitions [0,n) into contiguous shards, one per worker, and
// calls fn(i) for every index, blocking until all shards finish. fn is
// expected to touch only state at index i or read-only shared state.
func (p *Pool) Range(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	workers := p.size
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		if start >= n {
			break
		}
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// PrefixSumBool computes, for each index i, the number of true values
// in remove[0:i] — the per-index count of to-remove predecessors used
// to translate surviving indices down by an offset. It is computed in
// parallel per shard, then combined with a short sequential carry
// pass, mirroring the parallel-prefix-scan shape spec'd for ring
// compaction.
func (p *Pool) PrefixSumBool(remove []bool) []int {
	n := len(remove)
	counts := make([]int, n)
	if n == 0 {
		return counts
	}
	workers := p.size
	if workers > n {
		workers = n
	}
	if workers <= 0 {
		workers = 1
	}
	chunk := (n + workers - 1) / workers
	chunkSums := make([]int, workers)

	p.Range(workers, func(w int) {
		start := w * chunk
		if start >= n {
			return
		}
		end := start + chunk
		if end > n {
			end = n
		}
		sum := 0
		for i := start; i < end; i++ {
			counts[i] = sum
			if remove[i] {
				sum++
			}
		}
		chunkSums[w] = sum
	})

	carry := 0
	for w := 0; w < workers; w++ {
		start := w * chunk
		if start >= n {
			continue
		}
		end := start + chunk
		if end > n {
			end = n
		}
		for i := start; i < end; i++ {
			counts[i] += carry
		}
		carry += chunkSums[w]
	}
	return counts
}
