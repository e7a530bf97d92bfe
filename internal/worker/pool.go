// Package worker provides a bounded pool for running background tasks.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Task is a unit of work executed by the pool.
type Task func(ctx context.Context)

var (
	// ErrQueueFull is returned by Submit when the queue is full and the pool
	// is already at its maximum size.
	ErrQueueFull = errors.New("worker pool queue is full")
	// ErrPoolStopped is returned by Submit after Stop has been called.
	ErrPoolStopped = errors.New("worker pool is stopped")
)

// extraIdleTimeout is how long a non-core worker waits for work before exiting.
const extraIdleTimeout = 30 * time.Second

// Config holds worker pool sizing.
type Config struct {
	CoreSize      int
	MaxSize       int
	QueueCapacity int
	NamePrefix    string
}

// Pool runs submitted tasks on a bounded set of workers.
// CoreSize workers live for the lifetime of the pool; when the queue is full,
// extra workers are started up to MaxSize and reaped after an idle period.
// Submit never blocks the caller.
type Pool struct {
	cfg    Config
	logger *slog.Logger

	tasks  chan Task
	wg     sync.WaitGroup
	cancel context.CancelFunc
	ctx    context.Context

	mu      sync.Mutex
	workers int
	nextID  int
	running bool
}

// NewPool creates a new worker pool with the given sizing.
func NewPool(cfg Config, logger *slog.Logger) *Pool {
	if cfg.NamePrefix == "" {
		cfg.NamePrefix = "worker"
	}
	return &Pool{
		cfg:    cfg,
		logger: logger.With("component", "worker_pool"),
		tasks:  make(chan Task, cfg.QueueCapacity),
	}
}

// Start launches the core workers. The pool outlives the caller's context;
// it stops only via Stop, so queued tasks can drain during shutdown.
func (p *Pool) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return fmt.Errorf("worker pool is already running")
	}
	p.running = true
	p.ctx, p.cancel = context.WithCancel(context.Background())

	for range p.cfg.CoreSize {
		p.nextID++
		p.workers++
		name := fmt.Sprintf("%s-%d", p.cfg.NamePrefix, p.nextID)
		p.wg.Add(1)
		go p.coreWorker(p.ctx, name)
	}
	p.logger.Info("Worker pool started",
		"core_size", p.cfg.CoreSize,
		"max_size", p.cfg.MaxSize,
		"queue_capacity", p.cfg.QueueCapacity,
	)
	return nil
}

// Submit hands a task to the pool without blocking: the task is queued if the
// queue has room, otherwise an extra worker is started if the pool is below
// MaxSize, otherwise ErrQueueFull is returned.
func (p *Pool) Submit(task Task) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return ErrPoolStopped
	}

	select {
	case p.tasks <- task:
		return nil
	default:
	}

	if p.workers < p.cfg.MaxSize {
		p.nextID++
		p.workers++
		name := fmt.Sprintf("%s-%d", p.cfg.NamePrefix, p.nextID)
		p.wg.Add(1)
		go p.extraWorker(p.ctx, name, task)
		return nil
	}

	return ErrQueueFull
}

// Stop stops intake, drains queued tasks and waits for workers to finish.
// When the context expires first, in-flight work is cancelled.
func (p *Pool) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = false
	close(p.tasks)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("Worker pool stopped gracefully")
		return nil
	case <-ctx.Done():
		p.cancel()
		p.logger.Warn("Worker pool drain timed out, cancelling in-flight tasks")
		<-done
		return ctx.Err()
	}
}

// coreWorker processes tasks until the queue is closed and drained.
func (p *Pool) coreWorker(ctx context.Context, name string) {
	defer p.workerDone(name)
	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-p.tasks:
			if !ok {
				return
			}
			p.runTask(ctx, name, task)
		}
	}
}

// extraWorker runs its initial task, then keeps serving the queue until it
// stays idle for extraIdleTimeout.
func (p *Pool) extraWorker(ctx context.Context, name string, task Task) {
	defer p.workerDone(name)
	p.runTask(ctx, name, task)

	idle := time.NewTimer(extraIdleTimeout)
	defer idle.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case t, ok := <-p.tasks:
			if !ok {
				return
			}
			p.runTask(ctx, name, t)
			if !idle.Stop() {
				<-idle.C
			}
			idle.Reset(extraIdleTimeout)
		case <-idle.C:
			return
		}
	}
}

// runTask executes a single task; a panicking task is logged and isolated.
func (p *Pool) runTask(ctx context.Context, name string, task Task) {
	defer func() {
		if rvr := recover(); rvr != nil {
			p.logger.Error("Panic recovered in task", "worker", name, "panic", rvr)
		}
	}()
	task(ctx)
}

func (p *Pool) workerDone(name string) {
	p.mu.Lock()
	p.workers--
	p.mu.Unlock()
	p.wg.Done()
	p.logger.Debug("Worker exited", "worker", name)
}
