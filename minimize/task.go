package minimize

import (
	"github.com/YuminosukeSato/lalg/async"
	"github.com/YuminosukeSato/lalg/matrix"
	"github.com/YuminosukeSato/lalg/pkg/errors"
	"github.com/YuminosukeSato/lalg/pkg/log"
)

// Task runs Solve as an async.Task. The caller's x is never written: it is
// copied into the result matrix at preparation and the minimum is written
// there instead.
type Task struct {
	x      *matrix.Matrix
	obj    Objective
	method Method
	opts   []Option

	out    *matrix.Matrix
	result Result
}

var _ async.Task = (*Task)(nil)

// SolveTask returns a task minimizing obj starting from x.
func SolveTask(x *matrix.Matrix, obj Objective, method Method, opts ...Option) *Task {
	return &Task{x: x, obj: obj, method: method, opts: opts}
}

// Name implements async.Task.
func (t *Task) Name() string { return log.OperationSolve }

// Prepare implements async.Task.
func (t *Task) Prepare() error {
	if t.x.Len() == 0 {
		return errors.NewValidationError("x", "must have at least one element", t.x.Len())
	}
	if t.obj == nil {
		return errors.NewValidationError("objective", "must not be nil", nil)
	}
	if _, err := t.method.optimizer(0); err != nil {
		return err
	}
	t.out = t.x.Dup()
	return nil
}

// Execute implements async.Task.
func (t *Task) Execute() error {
	res, err := Solve(t.out, t.obj, t.method, t.opts...)
	if err != nil {
		return err
	}
	t.result = res
	return nil
}

// Result implements async.Task. It returns the minimum with x's shape.
func (t *Task) Result() *matrix.Matrix { return t.out }

// Summary returns the run summary once the task has completed.
func (t *Task) Summary() Result { return t.result }
