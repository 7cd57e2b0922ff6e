package worker

import (
	"context"
	"log/slog"
	"sync"
)

// Pool runs independent batch items across a bounded set of goroutines.
// Items are identified by index; each index is handed to exactly one
// goroutine, so result slots indexed the same way need no locking.
type Pool struct {
	concurrency int
	logger      *slog.Logger
}

// PoolConfig holds configuration for the pool.
type PoolConfig struct {
	Logger      *slog.Logger
	Concurrency int // Number of concurrent item processors
}

// NewPool creates a new worker pool.
func NewPool(cfg PoolConfig) *Pool {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Pool{concurrency: concurrency, logger: logger}
}

// Concurrency returns the configured parallelism.
func (p *Pool) Concurrency() int {
	return p.concurrency
}

// Run processes items [0, n) with the configured concurrency and blocks
// until every item is done or the context is cancelled. fn must confine its
// writes to the item's own result slot.
func (p *Pool) Run(ctx context.Context, n int, fn func(ctx context.Context, item int)) error {
	if n <= 0 {
		return nil
	}

	items := make(chan int)
	var wg sync.WaitGroup

	workers := p.concurrency
	if workers > n {
		workers = n
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range items {
				fn(ctx, item)
			}
		}()
	}

	p.logger.Debug("worker pool started", "workers", workers, "items", n)

dispatch:
	for item := 0; item < n; item++ {
		select {
		case items <- item:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(items)

	wg.Wait()
	return ctx.Err()
}
