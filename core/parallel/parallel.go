package parallel

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// DefaultThreshold is the element count below which loops stay sequential.
const DefaultThreshold = 1 << 15

var threshold atomic.Int64

func init() {
	threshold.Store(DefaultThreshold)
}

// SetThreshold changes the process-wide sequential cutoff used by For.
// Non-positive values restore DefaultThreshold.
func SetThreshold(n int) {
	if n <= 0 {
		n = DefaultThreshold
	}
	threshold.Store(int64(n))
}

// Threshold returns the current sequential cutoff.
func Threshold() int {
	return int(threshold.Load())
}

// Parallelize divides items into one contiguous range per CPU core and runs
// fn(start, end) for each range concurrently, returning when all are done.
func Parallelize(items int, fn func(start, end int)) {
	_ = ParallelizeErr(context.Background(), items, func(_ context.Context, start, end int) error {
		fn(start, end)
		return nil
	})
}

// ParallelizeErr is Parallelize for range functions that can fail.
// The first error cancels ctx for the remaining ranges and is returned.
func ParallelizeErr(ctx context.Context, items int, fn func(ctx context.Context, start, end int) error) error {
	if items <= 0 {
		return nil
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items
	}
	chunkSize := (items + numWorkers - 1) / numWorkers

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(numWorkers)
	for start := 0; start < items; start += chunkSize {
		end := min(start+chunkSize, items)
		s := start
		g.Go(func() error {
			return fn(gctx, s, end)
		})
	}
	return g.Wait()
}

// ParallelizeWithThreshold performs parallelization only when items exceeds threshold.
// Below the threshold fn runs once over the whole range on the calling goroutine.
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}

// For splits [0, items) using the process-wide threshold.
func For(items int, fn func(start, end int)) {
	ParallelizeWithThreshold(items, Threshold(), fn)
}
