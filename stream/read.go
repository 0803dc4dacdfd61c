package stream

import (
	"context"

	"github.com/google/uuid"

	"github.com/YuminosukeSato/lalg/async"
	"github.com/YuminosukeSato/lalg/matrix"
)

// Collect drains rows into a matrix. It returns when rows is closed, when a
// row is rejected, or when ctx is done. After an early return the producer
// must stop sending on its own, typically by watching the same ctx.
func Collect(ctx context.Context, rows <-chan []float64, opts ...Option) (*matrix.Matrix, error) {
	in := NewIngester(opts...)
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case row, ok := <-rows:
			if !ok {
				return in.End()
			}
			if err := in.Push(row); err != nil {
				return nil, err
			}
		}
	}
}

// Read collects rows on a new goroutine and returns a future that resolves
// with the finished matrix.
func Read(ctx context.Context, rows <-chan []float64, opts ...Option) *async.Future {
	return async.Go(uuid.NewString(), func() (*matrix.Matrix, error) {
		return Collect(ctx, rows, opts...)
	})
}
