// Package batch runs a group of functions concurrently and collects their
// results in submission order.
package batch

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// New batch. The returned context is canceled when any function fails.
func New[R any](ctx context.Context) (*Batch[R], context.Context) {
	eg, ctx := errgroup.WithContext(ctx)
	return &Batch[R]{eg: eg}, ctx
}

type Batch[R any] struct {
	eg      *errgroup.Group
	mu      sync.Mutex
	results []R
}

// Go runs fn in its own goroutine, reserving its slot in the results
func (b *Batch[R]) Go(fn func() (R, error)) {
	b.mu.Lock()
	idx := len(b.results)
	b.results = append(b.results, *new(R))
	b.mu.Unlock()

	b.eg.Go(func() error {
		result, err := fn()
		if err != nil {
			return err
		}
		b.mu.Lock()
		b.results[idx] = result
		b.mu.Unlock()
		return nil
	})
}

// Wait for every function and return the results in the order they were
// submitted, or the first error
func (b *Batch[R]) Wait() ([]R, error) {
	if err := b.eg.Wait(); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]R(nil), b.results...), nil
}
