// Package parallel schedules row bands of a pixel buffer across goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// band is one half-open row range queued for a worker.
type band struct {
	lo, hi int
	fn     func(lo, hi int)
	done   *sync.WaitGroup
}

// WorkerPool is a fixed set of goroutines that run row bands.
//
// The calling goroutine of Rows always runs the last band itself, so a pool
// of n workers keeps n-1 goroutines.
//
// Thread safety: Rows may be called concurrently; Close must not race with
// Rows.
type WorkerPool struct {
	workers int
	bands   chan band
	wg      sync.WaitGroup
	closed  atomic.Bool
}

// NewWorkerPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &WorkerPool{
		workers: workers,
		bands:   make(chan band, workers),
	}
	p.wg.Add(workers - 1)
	for range workers - 1 {
		go p.worker()
	}
	return p
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for b := range p.bands {
		b.fn(b.lo, b.hi)
		b.done.Done()
	}
}

// Rows calls fn for disjoint row ranges covering [0, height) and returns
// once every call has finished. A nil, single-worker or closed pool runs
// fn(0, height) on the calling goroutine.
func (p *WorkerPool) Rows(height int, fn func(lo, hi int)) {
	if height <= 0 {
		return
	}
	if p == nil || p.workers <= 1 || p.closed.Load() {
		fn(0, height)
		return
	}

	bands := Bands(height, p.workers)
	last := bands[len(bands)-1]

	var done sync.WaitGroup
	done.Add(len(bands) - 1)
	for _, b := range bands[:len(bands)-1] {
		p.bands <- band{lo: b[0], hi: b[1], fn: fn, done: &done}
	}
	fn(last[0], last[1])
	done.Wait()
}

// Close stops the workers after the bands already queued have run.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.closed.CompareAndSwap(false, true) {
		return
	}
	close(p.bands)
	p.wg.Wait()
}

// Workers returns the number of bands the pool runs at once.
func (p *WorkerPool) Workers() int {
	return p.workers
}
