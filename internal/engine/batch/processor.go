// Package batch splits record slices into fixed-size chunks and runs a
// callback per chunk, sequentially or with bounded concurrency.
package batch

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Batch size limits.
const (
	DefaultBatchSize = 100
	MinBatchSize     = 1
	MaxBatchSize     = 1000
)

// Sentinel errors.
var (
	ErrInvalidBatchSize = errors.New("batch size must be between 1 and 1000")
	ErrNilCallback      = errors.New("batch callback cannot be nil")
	ErrEmptyItems       = errors.New("items slice cannot be empty")
)

// Callback handles one chunk. offset is the index of chunk[0] in the full slice.
type Callback[T any] func(ctx context.Context, chunk []T, offset int) error

// ProgressFunc is called after each chunk completes.
type ProgressFunc func(done, total int)

// Processor runs callbacks over chunks of a slice.
type Processor[T any] struct {
	size       int
	onProgress ProgressFunc
}

// NewProcessor creates a processor with the given chunk size.
func NewProcessor[T any](size int) (*Processor[T], error) {
	if size < MinBatchSize || size > MaxBatchSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, size)
	}
	return &Processor[T]{size: size}, nil
}

// NewProcessorWithDefaults creates a processor using DefaultBatchSize.
func NewProcessorWithDefaults[T any]() *Processor[T] {
	return &Processor[T]{size: DefaultBatchSize}
}

// WithProgress registers a progress callback.
func (p *Processor[T]) WithProgress(fn ProgressFunc) *Processor[T] {
	p.onProgress = fn
	return p
}

// Size returns the chunk size.
func (p *Processor[T]) Size() int {
	return p.size
}

// Chunks returns the [start, end) bounds of every chunk for n items.
func (p *Processor[T]) Chunks(n int) [][2]int {
	var out [][2]int
	for start := 0; start < n; start += p.size {
		out = append(out, [2]int{start, min(start+p.size, n)})
	}
	return out
}

// Process runs fn over each chunk in order and stops at the first error.
func (p *Processor[T]) Process(ctx context.Context, items []T, fn Callback[T]) error {
	return p.ProcessConcurrent(ctx, items, fn, 1)
}

// ProcessConcurrent runs fn over the chunks with at most limit in flight.
// The first error cancels the remaining chunks and is returned.
func (p *Processor[T]) ProcessConcurrent(ctx context.Context, items []T, fn Callback[T], limit int) error {
	if len(items) == 0 {
		return ErrEmptyItems
	}
	if fn == nil {
		return ErrNilCallback
	}

	progress := newCounter(len(items), p.onProgress)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(limit, 1))

	for i, bounds := range p.Chunks(len(items)) {
		if err := gctx.Err(); err != nil {
			break
		}
		chunk := items[bounds[0]:bounds[1]]
		offset := bounds[0]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := fn(gctx, chunk, offset); err != nil {
				return fmt.Errorf("batch %d failed: %w", i, err)
			}
			progress.add(len(chunk))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
