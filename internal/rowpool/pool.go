// Package rowpool runs per-row pixel work on a fixed set of goroutines.
//
// A frame is split into horizontal bands and each band is queued to one
// worker. Idle workers steal bands from busy ones, so a slow band does
// not hold up the whole frame.
package rowpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// minBandRows is the smallest band handed to a worker. Smaller frames
// run on the calling goroutine.
const minBandRows = 16

// Pool executes row bands in parallel.
//
// Thread safety: Rows may be called from several goroutines at once, but
// not concurrently with Close.
type Pool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// New starts a pool with the given number of workers. If workers is 0 or
// negative, GOMAXPROCS is used.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	depth := max(workers*4, 8)

	p := &Pool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range p.queues {
		p.queues[i] = make(chan func(), depth)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	own := p.queues[id]
	for {
		select {
		case <-p.done:
			drain(own)
			return
		case fn := <-own:
			fn()
			continue
		default:
		}

		if fn := p.steal(id); fn != nil {
			fn()
			continue
		}
		select {
		case <-p.done:
			drain(own)
			return
		case fn := <-own:
			fn()
		}
	}
}

func drain(q chan func()) {
	for {
		select {
		case fn := <-q:
			fn()
		default:
			return
		}
	}
}

func (p *Pool) steal(id int) func() {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case fn := <-p.queues[i]:
			return fn
		default:
		}
	}
	return nil
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int {
	return p.workers
}

// Bands returns how many bands Rows splits height rows into.
func (p *Pool) Bands(height int) int {
	if height <= 0 {
		return 0
	}
	n := min(p.workers, (height+minBandRows-1)/minBandRows)
	return max(n, 1)
}

// Rows calls fn for consecutive row ranges [y0, y1) that together cover
// [0, height) and returns when every call has finished. After Close, or
// when the frame is too small to split, fn runs on the caller.
func (p *Pool) Rows(height int, fn func(y0, y1 int)) {
	bands := p.Bands(height)
	if bands == 0 {
		return
	}
	if bands == 1 || !p.running.Load() {
		fn(0, height)
		return
	}

	var wg sync.WaitGroup
	wg.Add(bands)
	step := (height + bands - 1) / bands
	for i := range bands {
		y0 := i * step
		y1 := min(y0+step, height)
		task := func() {
			defer wg.Done()
			fn(y0, y1)
		}
		select {
		case p.queues[i%p.workers] <- task:
		case <-p.done:
			task()
		}
	}
	wg.Wait()
}

// Close stops the workers after the queued bands have run. Close is
// safe to call more than once.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}
