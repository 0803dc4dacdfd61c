// Package async runs expensive matrix operations off the calling goroutine.
//
// A Task is prepared on the caller (validation and result allocation),
// executed on a bounded worker pool, and completed on a single completion
// loop owned by the Runner. Each invocation resolves exactly one sink: the
// error returned by Run, a Future, or a callback.
package async

import (
	"github.com/YuminosukeSato/lalg/matrix"
)

// Task is one unit of matrix work.
//
// Prepare runs on the caller goroutine and must validate inputs and allocate
// the result. Execute runs on a worker; it may read the inputs captured by
// Prepare and write only the pre-allocated result. Result is read on the
// completion loop after a successful Execute.
//
// Inputs captured by a task must not be mutated while it is in flight.
type Task interface {
	Name() string
	Prepare() error
	Execute() error
	Result() *matrix.Matrix
}

// Callback receives the outcome of a task. Exactly one of err and result is non-nil.
type Callback func(err error, result *matrix.Matrix)

// State is the lifecycle state of a task invocation.
type State int

const (
	// StatePrepared means validation passed and the result is allocated.
	StatePrepared State = iota
	// StateRunning means the task is executing, inline or on a worker.
	StateRunning
	// StateCompleted means the outcome has been delivered to its sink.
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StatePrepared:
		return "prepared"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}
