package minimize

import (
	"time"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"

	"github.com/YuminosukeSato/lalg/matrix"
	"github.com/YuminosukeSato/lalg/pkg/errors"
	"github.com/YuminosukeSato/lalg/pkg/log"
)

// Result summarizes a minimization run.
type Result struct {
	// F is the objective value at the minimum written back into x.
	F float64
	// Iterations is the number of major iterations.
	Iterations int
	// Evaluations is the number of objective evaluations.
	Evaluations int
	// Status is gonum's termination status.
	Status optimize.Status
	// Runtime is the wall time of the run.
	Runtime time.Duration
}

// Converged reports whether the run ended at a minimum rather than at a limit.
func (r Result) Converged() bool {
	return !r.Status.Early()
}

// Finite-difference steps are sized for float32 objective inputs; gonum's
// defaults are below float32 resolution.
var (
	gradientSettings = &fd.Settings{Formula: fd.Central, Step: 1e-3}
	hessianSettings  = &fd.Settings{Formula: fd.Central, Step: 1e-2}
)

// problem adapts an Objective to gonum's float64 callbacks. Calls are
// serialized by optimize.Minimize, so the scratch matrix is reused.
type problem struct {
	obj     Objective
	scratch *matrix.Matrix
	err     error
}

func (p *problem) load(v []float64) *matrix.Matrix {
	data := p.scratch.RawData()
	for i := range data {
		data[i] = float32(v[i])
	}
	return p.scratch
}

func (p *problem) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

// guard records a panic raised by user code. The objective runs on
// optimize.Minimize's worker goroutines.
func (p *problem) guard(op string) {
	if r := recover(); r != nil {
		p.fail(errors.NewPanicError(op, r))
	}
}

func (p *problem) value(v []float64) (f float64) {
	defer p.guard("Value")
	f = p.obj.Value(p.load(v))
	if err := errors.CheckScalar("Solve", "objective", f); err != nil {
		p.fail(err)
	}
	return f
}

func (p *problem) gradient(grad, v []float64) {
	defer p.guard("Gradient")
	g := p.obj.Gradient(p.load(v))
	if g == nil {
		fd.Gradient(grad, p.value, v, gradientSettings)
		return
	}
	if g.Len() != len(grad) {
		p.fail(errors.NewShapeError("Gradient", g.Rows(), g.Cols(), p.scratch.Rows(), p.scratch.Cols()))
		return
	}
	for i, d := range g.RawData() {
		grad[i] = float64(d)
	}
}

func (p *problem) hessian(hess *mat.SymDense, v []float64) {
	defer p.guard("Hessian")
	if h, ok := p.obj.(Hessianer); ok {
		if hm := h.Hessian(p.load(v)); hm != nil {
			n := len(v)
			if hm.Rows() != n || hm.Cols() != n {
				p.fail(errors.NewShapeError("Hessian", hm.Rows(), hm.Cols(), n, n))
				return
			}
			for j := 0; j < n; j++ {
				for i := 0; i <= j; i++ {
					hess.SetSym(i, j, (hm.At(i, j)+hm.At(j, i))/2)
				}
			}
			return
		}
	}
	fd.Hessian(hess, p.value, v, hessianSettings)
}

func (p *problem) status() (optimize.Status, error) {
	if p.err != nil {
		return optimize.Failure, p.err
	}
	return optimize.NotTerminated, nil
}

// Solve minimizes obj over the elements of x, starting from x's current
// values, and writes the minimum back into x. x may have any shape; its
// length is the problem dimension.
//
// A run that stops at an iteration or evaluation limit, or whose method
// gives up, still writes back the best point found and emits a
// ConvergenceWarning. A non-finite objective value or a malformed gradient
// is an error and leaves x unchanged.
func Solve(x *matrix.Matrix, obj Objective, method Method, opts ...Option) (Result, error) {
	o := newOptions(opts)
	if x.Len() == 0 {
		return Result{}, errors.NewValidationError("x", "must have at least one element", x.Len())
	}
	if obj == nil {
		return Result{}, errors.NewValidationError("objective", "must not be nil", nil)
	}
	m, err := method.optimizer(o.seed)
	if err != nil {
		return Result{}, err
	}

	p := &problem{obj: obj, scratch: matrix.Zeros(x.Rows(), x.Cols())}
	prob := optimize.Problem{
		Func:   p.value,
		Grad:   p.gradient,
		Status: p.status,
	}
	if method.usesHessian() {
		prob.Hess = p.hessian
	}
	settings := &optimize.Settings{
		MajorIterations:   o.maxIterations,
		FuncEvaluations:   o.maxEvaluations,
		GradientThreshold: o.gradientThreshold,
	}

	x0 := make([]float64, x.Len())
	for i, v := range x.RawData() {
		x0[i] = float64(v)
	}

	var res *optimize.Result
	runErr := errors.SafeExecute("Solve", func() error {
		var err error
		res, err = optimize.Minimize(prob, x0, settings, m)
		return err
	})
	if p.err != nil {
		return Result{}, p.err
	}
	if res == nil {
		return Result{}, errors.Wrapf(runErr, "minimize with %s", method)
	}

	out := Result{
		F:           res.F,
		Iterations:  res.MajorIterations,
		Evaluations: res.FuncEvaluations,
		Status:      res.Status,
		Runtime:     res.Runtime,
	}
	data := x.RawData()
	for i, v := range res.X {
		data[i] = float32(v)
	}

	logger := o.logger.With(
		log.OperationKey, log.OperationSolve,
		log.MethodKey, method.String(),
		log.IterationKey, out.Iterations,
		log.EvaluationsKey, out.Evaluations,
		log.ValueKey, out.F,
	)
	switch {
	case runErr != nil:
		errors.Warn(errors.NewConvergenceWarning(method.String(), out.Iterations, runErr.Error()))
		logger.Warn("minimization stopped early", runErr)
	case !out.Converged():
		errors.Warn(errors.NewConvergenceWarning(method.String(), out.Iterations, out.Status.String()))
		logger.Warn("minimization stopped early", "status", out.Status.String())
	default:
		logger.Debug("minimization finished", "status", out.Status.String())
	}
	return out, nil
}
