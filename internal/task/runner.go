// Package task runs best-effort background work with a bounded number of
// in-flight executions. Task failures are logged and never propagated to the
// caller.
package task

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/dtroode/sleeptracker-server/internal/logger"
)

// Runner executes fire-and-forget tasks.
type Runner struct {
	sem    *semaphore.Weighted
	logger *logger.Logger
	wg     sync.WaitGroup
}

// NewRunner creates a Runner allowing up to maxConcurrent tasks in flight.
func NewRunner(maxConcurrent int64, logger *logger.Logger) *Runner {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Runner{
		sem:    semaphore.NewWeighted(maxConcurrent),
		logger: logger,
	}
}

// Go schedules fn on a new goroutine. When the concurrency budget is
// exhausted the task is dropped with a log entry instead of blocking the
// caller.
func (r *Runner) Go(name string, fn func(ctx context.Context) error) {
	if !r.sem.TryAcquire(1) {
		r.logger.Warn("background task dropped: runner saturated", "task", name)
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer r.sem.Release(1)

		if err := fn(context.Background()); err != nil {
			r.logger.Error("background task failed",
				"task", name,
				"error", err.Error())
		}
	}()
}

// Wait blocks until all scheduled tasks have finished. Used on shutdown.
func (r *Runner) Wait() {
	r.wg.Wait()
}
