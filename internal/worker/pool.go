package worker

import (
	"runtime"
	"sync"
)

// Pool runs submitted jobs on a fixed number of goroutines
type Pool struct {
	workers int
	jobs    chan func()
	wg      sync.WaitGroup
	start   sync.Once
	close   sync.Once
}

// NewPool creates a pool with the given number of workers; zero or less means one per CPU
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Pool{
		workers: workers,
		jobs:    make(chan func(), workers*2),
	}
}

// Workers returns the number of goroutines the pool runs
func (p *Pool) Workers() int {
	return p.workers
}

// Start launches the workers; later calls do nothing
func (p *Pool) Start() {
	p.start.Do(func() {
		for i := 0; i < p.workers; i++ {
			go p.run()
		}
	})
}

func (p *Pool) run() {
	for job := range p.jobs {
		job()
	}
}

// Submit queues a job, blocking while the queue is full
func (p *Pool) Submit(job func()) {
	p.wg.Add(1)
	p.jobs <- func() {
		defer p.wg.Done()
		job()
	}
}

// Wait blocks until every submitted job has finished
func (p *Pool) Wait() {
	p.wg.Wait()
}

// Close stops the workers once the queue drains; Submit must not be called afterwards
func (p *Pool) Close() {
	p.close.Do(func() {
		close(p.jobs)
	})
}
