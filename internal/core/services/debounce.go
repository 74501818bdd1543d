package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
)

// Debouncer delays calls until input has been quiet for a period and
// discards every result except the one for the latest input.
//
// Each Do call supersedes the previous one: a superseded call returns
// domain.ErrSuperseded whether it was still waiting or already running,
// and its context is cancelled.
type Debouncer[T any] struct {
	delay time.Duration
	fn    func(ctx context.Context, input string) (T, error)

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// NewDebouncer creates a debouncer around fn.
func NewDebouncer[T any](delay time.Duration, fn func(ctx context.Context, input string) (T, error)) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, fn: fn}
}

// Do schedules fn for input and blocks until it runs or is superseded.
func (d *Debouncer[T]) Do(ctx context.Context, input string) (T, error) {
	var zero T

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	d.mu.Lock()
	d.seq++
	seq := d.seq
	if d.cancel != nil {
		d.cancel()
	}
	d.cancel = cancel
	d.mu.Unlock()

	if d.delay > 0 {
		t := time.NewTimer(d.delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			if d.superseded(seq) {
				return zero, domain.ErrSuperseded
			}
			return zero, ctx.Err()
		}
	}

	v, err := d.fn(ctx, input)
	if d.superseded(seq) {
		return zero, domain.ErrSuperseded
	}
	return v, err
}

// Cancel supersedes any pending or running call.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

func (d *Debouncer[T]) superseded(seq uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.seq != seq
}
