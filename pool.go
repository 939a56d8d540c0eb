package pageseg

import (
	"io"
	"sync"
)

// Pool is a simple pool of closable workers, such as layout detectors, shared
// between the goroutines processing pages concurrently
type Pool[T io.Closer] struct {
	// pool of workers
	workers chan T
	// size of pool
	size  int
	close sync.Once
}

// NewPool creates a new worker pool of the given size, calling factory once
// for each slot
func NewPool[T io.Closer](size int, factory func(i int) (T, error)) (*Pool[T], error) {

	if size < 1 {
		size = 1
	}

	p := &Pool[T]{
		workers: make(chan T, size),
		size:    size,
	}

	for i := 0; i < size; i++ {
		w, err := factory(i)

		if err != nil {
			// close any instances that may have been created before receiving
			// the error
			p.Close()
			return nil, err
		}

		// attach to pool
		p.Return(w)
	}

	return p, nil
}

// Size returns the number of workers in the pool
func (p *Pool[T]) Size() int {
	return p.size
}

// Get takes a worker from the pool, blocking until one is available
func (p *Pool[T]) Get() T {
	return <-p.workers
}

// Return a worker to the pool
func (p *Pool[T]) Return(w T) {
	select {
	case p.workers <- w:
	default:
		// pool is full
	}
}

// Close the pool and all workers in it
func (p *Pool[T]) Close() {
	p.close.Do(func() {
		// close channel
		close(p.workers)

		// close all workers
		for next := range p.workers {
			_ = next.Close()
		}
	})
}
