package parallel

import (
	"runtime"
	"sync"
)

// Pool runs submitted functions on a fixed set of goroutines. A pool with a
// single worker runs everything inline on the caller's goroutine.
type Pool struct {
	workers  int
	workChan chan func()
	wg       sync.WaitGroup
	tasks    sync.WaitGroup
	stop     func()
}

func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		workers: numWorkers,
		stop:    func() {},
	}

	if numWorkers > 1 {
		pool.workChan = make(chan func(), numWorkers)

		for range numWorkers {
			pool.wg.Go(func() {
				for {
					f, ok := <-pool.workChan
					if !ok {
						return
					}
					f()
					pool.tasks.Done()
				}
			})
		}

		pool.stop = sync.OnceFunc(func() {
			close(pool.workChan)
			pool.wg.Wait()
		})
	}

	return pool
}

func (p *Pool) Workers() int {
	return p.workers
}

// Do schedules f. It must not be called after Close.
func (p *Pool) Do(f func()) {
	if p.workChan == nil {
		f()
		return
	}

	p.tasks.Add(1)
	p.workChan <- f
}

// Wait blocks until every function passed to Do so far has returned.
func (p *Pool) Wait() {
	p.tasks.Wait()
}

// Close waits for pending work and stops the workers.
func (p *Pool) Close() {
	p.tasks.Wait()
	p.stop()
}

// Split runs fn over [0, n) cut into one contiguous range per worker and
// waits for all of them.
func (p *Pool) Split(n int, fn func(lo, hi int)) {
	chunks := min(p.workers, n)
	if chunks <= 1 {
		fn(0, n)
		return
	}

	size := (n + chunks - 1) / chunks
	for lo := 0; lo < n; lo += size {
		hi := min(lo+size, n)
		p.Do(func() { fn(lo, hi) })
	}
	p.Wait()
}
