// Package parallel provides a work-stealing worker pool whose workers each
// own a private piece of state.
//
// Some workloads need scratch state that must never be shared between
// goroutines, such as an FFT engine bound to the goroutine that created it.
// WorkerPool builds that state on each worker goroutine and hands it to every
// task the worker runs, including tasks stolen from other workers' queues.
package parallel

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrClosed is returned when work is submitted to a closed pool.
var ErrClosed = errors.New("parallel: pool closed")

// WorkerPool distributes tasks across workers with per-worker queues.
// A worker that runs out of work steals from the other queues.
//
// Thread safety: WorkerPool is safe for concurrent use. The per-worker
// state S is only ever touched by the goroutine that created it. Tasks must
// not submit work to the pool that runs them.
type WorkerPool[S any] struct {
	workers    int
	workQueues []chan func(S)
	done       chan struct{}
	wg         sync.WaitGroup
	running    atomic.Bool

	// submitMu is held for reading while tasks are queued and for writing
	// while the pool shuts down, so no task lands in a drained queue.
	submitMu sync.RWMutex
}

// NewWorkerPool starts workers goroutines. Each calls init on its own
// goroutine to build its state before accepting work. If workers is 0 or
// negative, GOMAXPROCS is used. If any init fails the pool is shut down and
// the joined errors are returned.
func NewWorkerPool[S any](workers int, init func(id int) (S, error)) (*WorkerPool[S], error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &WorkerPool[S]{
		workers:    workers,
		workQueues: make([]chan func(S), workers),
		done:       make(chan struct{}),
	}
	for i := range workers {
		p.workQueues[i] = make(chan func(S), queueSize)
	}
	p.running.Store(true)

	initErrs := make([]error, workers)
	var ready sync.WaitGroup
	ready.Add(workers)
	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i, init, &ready, &initErrs[i])
	}
	ready.Wait()

	if err := errors.Join(initErrs...); err != nil {
		p.Close()
		return nil, fmt.Errorf("parallel: worker init: %w", err)
	}
	return p, nil
}

// worker builds its state and then runs the main loop.
func (p *WorkerPool[S]) worker(id int, init func(int) (S, error), ready *sync.WaitGroup, initErr *error) {
	defer p.wg.Done()

	state, err := init(id)
	*initErr = err
	ready.Done()
	if err != nil {
		<-p.done
		return
	}

	myQueue := p.workQueues[id]
	for {
		select {
		case <-p.done:
			p.drainQueue(myQueue, state)
			return

		case work := <-myQueue:
			work(state)

		default:
			if stolen := p.steal(id); stolen != nil {
				stolen(state)
				continue
			}
			select {
			case <-p.done:
				p.drainQueue(myQueue, state)
				return
			case work := <-myQueue:
				work(state)
			}
		}
	}
}

// drainQueue executes all remaining work in a queue.
func (p *WorkerPool[S]) drainQueue(queue chan func(S), state S) {
	for {
		select {
		case work := <-queue:
			work(state)
		default:
			return
		}
	}
}

// steal takes one task from another worker's queue, or returns nil.
func (p *WorkerPool[S]) steal(myID int) func(S) {
	for i := range p.workers {
		if i == myID {
			continue
		}
		select {
		case work := <-p.workQueues[i]:
			return work
		default:
		}
	}
	return nil
}

// ExecuteAll distributes work round-robin and waits for every task to
// finish. Either every task is queued and run, or none is and ErrClosed is
// returned.
func (p *WorkerPool[S]) ExecuteAll(work []func(S)) error {
	if len(work) == 0 {
		if !p.running.Load() {
			return ErrClosed
		}
		return nil
	}

	p.submitMu.RLock()
	if !p.running.Load() {
		p.submitMu.RUnlock()
		return ErrClosed
	}
	var completion sync.WaitGroup
	completion.Add(len(work))
	for i, fn := range work {
		p.workQueues[i%p.workers] <- func(s S) {
			defer completion.Done()
			fn(s)
		}
	}
	p.submitMu.RUnlock()

	completion.Wait()
	return nil
}

// Submit queues a single task on the worker with the shortest queue.
func (p *WorkerPool[S]) Submit(fn func(S)) error {
	if fn == nil {
		return nil
	}

	p.submitMu.RLock()
	defer p.submitMu.RUnlock()
	if !p.running.Load() {
		return ErrClosed
	}

	minIdx := 0
	for i := 1; i < p.workers; i++ {
		if len(p.workQueues[i]) < len(p.workQueues[minIdx]) {
			minIdx = i
		}
	}
	p.workQueues[minIdx] <- fn
	return nil
}

// Close stops accepting work, lets queued work finish and stops the
// workers. Close is safe to call multiple times.
func (p *WorkerPool[S]) Close() {
	p.submitMu.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.submitMu.Unlock()
		return
	}
	close(p.done)
	p.submitMu.Unlock()
	p.wg.Wait()
}

// Workers returns the number of workers.
func (p *WorkerPool[S]) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool accepts work.
func (p *WorkerPool[S]) IsRunning() bool {
	return p.running.Load()
}

// QueuedWork returns the approximate number of queued tasks.
func (p *WorkerPool[S]) QueuedWork() int {
	total := 0
	for _, q := range p.workQueues {
		total += len(q)
	}
	return total
}
