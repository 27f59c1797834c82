package worker

import (
	"context"
	"sync"

	"github.com/osse101/PointStore_Go/internal/logger"
)

// Job represents a task to be executed by a worker
type Job interface {
	Process(ctx context.Context) error
}

// JobFunc adapts a plain function to the Job interface
type JobFunc func(ctx context.Context) error

// Process calls f(ctx)
func (f JobFunc) Process(ctx context.Context) error {
	return f(ctx)
}

// Pool represents a worker pool
type Pool struct {
	workers  int
	jobQueue chan Job
	wg       sync.WaitGroup
	quit     chan struct{}
	stopOnce sync.Once

	mu      sync.RWMutex
	stopped bool
}

// NewPool creates a new worker pool
func NewPool(workers int, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, queueSize),
		quit:     make(chan struct{}),
	}
}

// Start starts the workers. Jobs run with ctx; cancel it to abort in-flight work.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

// worker is the worker loop
func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			if err := job.Process(ctx); err != nil {
				// Log error but don't crash worker
				logger.FromContext(ctx).Error(LogMsgWorkerJobFailed, "error", err)
			}
		case <-p.quit:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Enqueue adds a job to the queue, blocking while the queue is full.
// It returns false once the pool has been stopped.
func (p *Pool) Enqueue(job Job) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return false
	}

	select {
	case p.jobQueue <- job:
		return true
	case <-p.quit:
		return false
	}
}

// Stop stops the workers and waits for them to finish. Jobs still queued,
// including those left behind when the start context was cancelled, run once
// with a cancelled context so they can release what they hold. Safe to call twice.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		close(p.quit)
		p.mu.Lock()
		p.stopped = true
		p.mu.Unlock()
	})
	p.wg.Wait()
	p.drain()
}

func (p *Pool) drain() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for {
		select {
		case job := <-p.jobQueue:
			_ = job.Process(ctx)
		default:
			return
		}
	}
}
