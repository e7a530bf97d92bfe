// Package scheduler provides a fixed-interval trigger for background jobs.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gocatalog/productsvc/internal/worker"
)

// Job is the unit of work submitted on every firing.
type Job func(ctx context.Context) error

// Submitter accepts tasks for asynchronous execution. *worker.Pool implements it.
type Submitter interface {
	Submit(task worker.Task) error
}

// Scheduler fires at a fixed interval and submits one job per firing.
// Submission never blocks, so the cadence is independent of both job duration
// and queue saturation; rejected submissions are logged and dropped.
type Scheduler struct {
	interval time.Duration
	pool     Submitter
	job      Job
	logger   *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a scheduler that submits job to pool every interval.
func New(interval time.Duration, pool Submitter, job Job, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		interval: interval,
		pool:     pool,
		job:      job,
		logger:   logger.With("component", "scheduler"),
	}
}

// Start launches the ticker loop. It returns an error if already started.
func (s *Scheduler) Start() error {
	if s.done != nil {
		return fmt.Errorf("scheduler is already running")
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.run(ctx)
	s.logger.Info("Scheduler started", "interval", s.interval)
	return nil
}

// Stop cancels the ticker loop and waits for it to exit or the context to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.done == nil {
		return nil
	}
	s.cancel()
	select {
	case <-s.done:
		s.logger.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fire(ctx)
		}
	}
}

// fire submits one job execution and returns immediately.
func (s *Scheduler) fire(ctx context.Context) {
	err := s.pool.Submit(func(taskCtx context.Context) {
		// A failed job is isolated: logged, next firings unaffected.
		if jobErr := s.job(taskCtx); jobErr != nil {
			s.logger.ErrorContext(taskCtx, "Scheduled job failed", "error", jobErr)
		}
	})
	switch {
	case errors.Is(err, worker.ErrQueueFull):
		s.logger.WarnContext(ctx, "Worker queue is full, dropping scheduled job")
	case errors.Is(err, worker.ErrPoolStopped):
		s.logger.WarnContext(ctx, "Worker pool is stopped, dropping scheduled job")
	case err != nil:
		s.logger.ErrorContext(ctx, "Failed to submit scheduled job", "error", err)
	default:
		s.logger.DebugContext(ctx, "Scheduled job submitted")
	}
}
