// Package minimize finds local minima of user objectives over the elements
// of a Matrix using gonum's optimize methods.
//
// The solver works on a private float64 vector. Before every objective call
// the candidate point is copied into a scratch matrix shaped like the
// caller's variable, and the minimum is copied back into the variable when
// the run ends.
package minimize

import (
	"github.com/YuminosukeSato/lalg/matrix"
)

// Objective is a function to minimize together with its gradient.
//
// The matrix passed to Value and Gradient is scratch storage owned by the
// solver and is only valid for the duration of the call. Gradient returns a
// matrix with the same number of elements as x; returning nil selects a
// finite-difference gradient.
type Objective interface {
	Value(x *matrix.Matrix) float64
	Gradient(x *matrix.Matrix) *matrix.Matrix
}

// Hessianer is implemented by objectives that can supply an exact Hessian.
// It is used by the Newton method; the Hessian is an n×n matrix where n is
// the number of elements of x.
type Hessianer interface {
	Hessian(x *matrix.Matrix) *matrix.Matrix
}

// Funcs adapts plain functions to Objective. GradientFunc and HessianFunc
// are optional.
type Funcs struct {
	ValueFunc    func(x *matrix.Matrix) float64
	GradientFunc func(x *matrix.Matrix) *matrix.Matrix
	HessianFunc  func(x *matrix.Matrix) *matrix.Matrix
}

// Value implements Objective.
func (f Funcs) Value(x *matrix.Matrix) float64 { return f.ValueFunc(x) }

// Gradient implements Objective.
func (f Funcs) Gradient(x *matrix.Matrix) *matrix.Matrix {
	if f.GradientFunc == nil {
		return nil
	}
	return f.GradientFunc(x)
}

// Hessian implements Hessianer.
func (f Funcs) Hessian(x *matrix.Matrix) *matrix.Matrix {
	if f.HessianFunc == nil {
		return nil
	}
	return f.HessianFunc(x)
}
