// Package pool provides the process-wide bounded worker pool that runs
// voice pipelines and text forwards off the webhook-accept path.
package pool

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

var (
	// ErrQueueFull signals back-pressure: the caller decides what the
	// dropped task means for the end user.
	ErrQueueFull = errors.New("worker queue is full")
	ErrShutdown  = errors.New("pool is shut down")
)

type Pool struct {
	tasks chan func()
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// New starts a pool with a fixed number of workers and a bounded task
// queue. Workers live for the life of the process.
func New(workers, queueDepth int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queueDepth <= 0 {
		queueDepth = workers
	}

	p := &Pool{
		tasks: make(chan func(), queueDepth),
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	log.Info().Int("workers", workers).Int("queue_depth", queueDepth).Msg("Worker pool started")

	return p
}

// Submit enqueues a task without blocking. A saturated queue returns
// ErrQueueFull instead of stalling the webhook response.
func (p *Pool) Submit(task func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrShutdown
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

// Shutdown stops accepting tasks and waits for in-flight ones to finish or
// the context to expire. Queued tasks still run.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for task := range p.tasks {
		p.runTask(id, task)
	}
}

func (p *Pool) runTask(id int, task func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Int("worker", id).Any("panic", r).Msg("Task panicked")
		}
	}()

	task()
}
