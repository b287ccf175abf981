// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pkg/errors"
)

const defaultTaskTimeout = 30 * time.Second

// Dispatcher runs fire-and-forget work on detached goroutines. Each task
// gets its own deadline derived from a non-cancelable copy of the caller's
// context, so an upload outlives the request that triggered it. Panics are
// recovered and reported like errors.
type Dispatcher struct {
	logger  *slog.Logger
	timeout time.Duration

	mu   sync.Mutex
	sink func(task string, err error)
	wg   sync.WaitGroup
}

// NewDispatcher is the constructor for Dispatcher.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		logger:  logger,
		timeout: defaultTaskTimeout,
	}
}

// OnError installs an error sink invoked instead of the default warn log.
func (d *Dispatcher) OnError(fn func(task string, err error)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.sink = fn
}

// Go schedules fn on a detached goroutine and returns immediately.
func (d *Dispatcher) Go(ctx context.Context, task string, fn func(ctx context.Context) error) {
	detached := context.WithoutCancel(ctx)

	d.wg.Add(1)

	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.report(task, errors.Errorf("panic: %v", r))
			}
		}()

		runCtx, cancel := context.WithTimeout(detached, d.timeout)
		defer cancel()

		if err := fn(runCtx); err != nil {
			d.report(task, err)
		}
	}()
}

// Wait blocks until all scheduled tasks have finished. Used on shutdown and
// by tests that need deterministic completion.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) report(task string, err error) {
	d.mu.Lock()
	sink := d.sink
	d.mu.Unlock()

	if sink != nil {
		sink(task, err)

		return
	}

	d.logger.Warn("Background task failed", "task", task, "error", err)
}
