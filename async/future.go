package async

import (
	"context"
	"sync"

	"github.com/YuminosukeSato/lalg/matrix"
	"github.com/YuminosukeSato/lalg/pkg/errors"
)

// ErrPending is returned by Future.Result before the future is resolved.
var ErrPending = errors.New("future is not resolved yet")

// Future is the eventual outcome of a task started with Runner.Start.
// It is resolved exactly once.
type Future struct {
	id     string
	once   sync.Once
	done   chan struct{}
	result *matrix.Matrix
	err    error
}

// NewFuture returns an unresolved future. Producers outside a Runner resolve
// it with Resolve.
func NewFuture(id string) *Future {
	return &Future{id: id, done: make(chan struct{})}
}

// ID returns the id of the task behind the future.
func (f *Future) ID() string { return f.id }

// Resolve settles the future. Calls after the first are ignored and
// report false.
func (f *Future) Resolve(err error, result *matrix.Matrix) bool {
	resolved := false
	f.once.Do(func() {
		if err != nil {
			result = nil
		}
		f.result, f.err = result, err
		close(f.done)
		resolved = true
	})
	return resolved
}

// Done is closed once the future is resolved.
func (f *Future) Done() <-chan struct{} { return f.done }

// Wait blocks until the future is resolved or ctx is done. Cancelling ctx
// abandons the wait only; the task keeps running.
func (f *Future) Wait(ctx context.Context) (*matrix.Matrix, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Result returns the outcome without blocking, or ErrPending.
func (f *Future) Result() (*matrix.Matrix, error) {
	select {
	case <-f.done:
		return f.result, f.err
	default:
		return nil, ErrPending
	}
}

// Go runs fn on a new goroutine and returns a future for its outcome.
// It serves push-style producers, such as stream readers, that do not fit
// the prepare and execute split of a Task.
func Go(id string, fn func() (*matrix.Matrix, error)) *Future {
	f := NewFuture(id)
	go func() {
		var result *matrix.Matrix
		err := errors.SafeExecute(id, func() error {
			var err error
			result, err = fn()
			return err
		})
		f.Resolve(err, result)
	}()
	return f
}
