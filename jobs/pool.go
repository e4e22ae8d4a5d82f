// Package jobs runs per-batch work in parallel on a persistent worker pool.
//
// Work is scheduled as a parallel-for over batch indices. Scheduling never
// blocks: it returns a Handle, and a later schedule can name that Handle as
// its dependency so it starts only after the earlier work has finished.
// Callers join with Handle.Complete before reading results.
package jobs

import (
	"runtime"
	"sync"
)

// DefaultThreshold is the minimum batch count dispatched to the workers.
// Below this a single goroutine runs the whole range.
const DefaultThreshold = 64

// chunk is a contiguous range of indices for one worker.
type chunk struct {
	start, end int
	fn         func(i int)
	done       *sync.WaitGroup
}

// Pool is a fixed set of worker goroutines. It is safe for concurrent use.
type Pool struct {
	numWorkers int
	threshold  int

	workChan chan chunk
	stopChan chan struct{}
	wg       sync.WaitGroup // active workers
	inflight sync.WaitGroup // scheduled passes not yet finished

	mu      sync.Mutex
	running bool
	closed  bool
}

// NewPool creates a pool. workers <= 0 uses GOMAXPROCS; threshold <= 0
// uses DefaultThreshold. Workers start lazily on first use.
func NewPool(workers, threshold int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Pool{numWorkers: workers, threshold: threshold}
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int {
	return p.numWorkers
}

// acquire registers a new pass and launches the workers if they are not
// running yet.
func (p *Pool) acquire() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		panic("jobs: schedule on closed pool")
	}
	p.inflight.Add(1)
	if p.running {
		return
	}

	p.workChan = make(chan chunk, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker processes chunks until the pool stops.
func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.stopChan:
			return
		case c := <-p.workChan:
			for i := c.start; i < c.end; i++ {
				c.fn(i)
			}
			c.done.Done()
		}
	}
}

// ScheduleParallel runs fn(i) for every i in [0, n) once dependency has
// completed. It returns immediately. fn must only touch state owned by
// index i.
func (p *Pool) ScheduleParallel(n int, fn func(i int), dependency Handle) Handle {
	p.acquire()

	done := make(chan struct{})
	go func() {
		defer p.inflight.Done()
		defer close(done)
		dependency.Complete()
		p.run(n, fn)
	}()
	return Handle{done: done}
}

// run executes one pass and returns when every index has been processed.
func (p *Pool) run(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if n < p.threshold {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	chunkSize := (n + p.numWorkers - 1) / p.numWorkers
	var wg sync.WaitGroup
	for w := 0; w < p.numWorkers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			continue
		}
		wg.Add(1)
		p.workChan <- chunk{start: start, end: end, fn: fn, done: &wg}
	}
	wg.Wait()
}

// Close waits for scheduled passes to finish, then stops the workers.
// Scheduling after Close panics.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	running := p.running
	p.mu.Unlock()

	p.inflight.Wait()
	if running {
		close(p.stopChan)
		p.wg.Wait()
		p.running = false
	}
}
