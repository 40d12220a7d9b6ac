// Package batcher provides a generic write-behind buffer with rate limiting.
package batcher

import (
	"context"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// Batcher buffers items and hands them to the flush callback once the
// buffer fills up or the flush interval elapses. Flush failures are logged
// and the failed batch is dropped.
type Batcher[T any] struct {
	logger   *zap.Logger
	flush    func(context.Context, []T) error
	queue    chan T
	size     int
	interval time.Duration
	limiter  ratelimit.Limiter

	quit chan struct{}
	wg   sync.WaitGroup
}

// New constructs a Batcher flushing at most rps batches per second.
func New[T any](logger *zap.Logger, flush func(context.Context, []T) error, size int, interval time.Duration, rps int) *Batcher[T] {
	return &Batcher[T]{
		logger:   logger,
		flush:    flush,
		queue:    make(chan T, size*2),
		size:     size,
		interval: interval,
		limiter:  ratelimit.New(rps),
		quit:     make(chan struct{}),
	}
}

// Start begins the background flush loop.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.loop(ctx)
}

// Stop drains queued items, flushes them and waits for the loop to exit.
func (b *Batcher[T]) Stop() {
	close(b.quit)
	b.wg.Wait()
}

// Add queues an item, honoring context cancellation. Adding after Stop
// returns context.Canceled.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	select {
	case <-b.quit:
		return context.Canceled
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case b.queue <- item:
		return nil
	}
}

func (b *Batcher[T]) loop(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	pending := make([]T, 0, b.size)

	emit := func() {
		if len(pending) == 0 {
			return
		}
		b.limiter.Take()
		if err := b.flush(ctx, pending); err != nil {
			b.logger.Error("batch not flushed", zap.Error(err), zap.Int("size", len(pending)))
		} else {
			b.logger.Debug("batch flushed", zap.Int("size", len(pending)))
		}
		pending = pending[:0]
	}

	drain := func() {
		for {
			select {
			case item := <-b.queue:
				pending = append(pending, item)
				if len(pending) >= b.size {
					emit()
				}
			default:
				emit()
				return
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			drain()
			return

		case <-b.quit:
			drain()
			return

		case item := <-b.queue:
			pending = append(pending, item)
			if len(pending) >= b.size {
				emit()
			}

		case <-ticker.C:
			emit()
		}
	}
}
