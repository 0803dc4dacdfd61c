package minimize

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/lalg/async"
	"github.com/YuminosukeSato/lalg/matrix"
	"github.com/YuminosukeSato/lalg/pkg/errors"
	"github.com/YuminosukeSato/lalg/pkg/log"
)

// bowl is x² + y² - x - y, minimized at (0.5, 0.5).
type bowl struct{}

func (bowl) Value(x *matrix.Matrix) float64 {
	d := x.RawData()
	a, b := float64(d[0]), float64(d[1])
	return a*a + b*b - a - b
}

func (bowl) Gradient(x *matrix.Matrix) *matrix.Matrix {
	d := x.RawData()
	return matrix.New(2, 1, []float32{2*d[0] - 1, 2*d[1] - 1})
}

func rosenbrock() Funcs {
	return Funcs{
		ValueFunc: func(x *matrix.Matrix) float64 {
			d := x.RawData()
			a, b := float64(d[0]), float64(d[1])
			return (1-a)*(1-a) + 100*(b-a*a)*(b-a*a)
		},
		GradientFunc: func(x *matrix.Matrix) *matrix.Matrix {
			d := x.RawData()
			a, b := float64(d[0]), float64(d[1])
			return matrix.New(2, 1, []float32{
				float32(-2*(1-a) - 400*a*(b-a*a)),
				float32(200 * (b - a*a)),
			})
		},
	}
}

func quietOpts(opts ...Option) []Option {
	return append([]Option{WithLogger(log.NewTestLogger(log.LevelError))}, opts...)
}

type warnings struct {
	mu   sync.Mutex
	list []error
}

func captureWarnings(t *testing.T) *warnings {
	t.Helper()
	w := &warnings{}
	errors.SetZerologWarnFunc(nil)
	errors.SetWarningHandler(func(err error) {
		w.mu.Lock()
		defer w.mu.Unlock()
		w.list = append(w.list, err)
	})
	t.Cleanup(func() { errors.SetWarningHandler(nil) })
	return w
}

func (w *warnings) all() []error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]error(nil), w.list...)
}

func TestSolveBowlWithEveryMethod(t *testing.T) {
	captureWarnings(t)
	for _, method := range Methods() {
		t.Run(method.String(), func(t *testing.T) {
			x := matrix.New(2, 1, []float32{0.1, 0.1})
			res, err := Solve(x, bowl{}, method, quietOpts()...)
			require.NoError(t, err)

			assert.InDelta(t, 0.5, x.RawData()[0], 1e-2)
			assert.InDelta(t, 0.5, x.RawData()[1], 1e-2)
			assert.InDelta(t, -0.5, res.F, 1e-3)
			assert.Greater(t, res.Evaluations, 0)
		})
	}
}

func TestSolveKeepsShape(t *testing.T) {
	x := matrix.New(1, 2, []float32{0.1, 0.1})
	_, err := Solve(x, bowl{}, BFGS, quietOpts()...)
	require.NoError(t, err)
	assert.Equal(t, 1, x.Rows())
	assert.Equal(t, 2, x.Cols())
}

func TestSolveScratchIsNotTheVariable(t *testing.T) {
	x := matrix.New(2, 1, []float32{0.1, 0.1})
	var seen *matrix.Matrix
	obj := Funcs{
		ValueFunc: func(m *matrix.Matrix) float64 {
			seen = m
			return bowl{}.Value(m)
		},
		GradientFunc: bowl{}.Gradient,
	}
	_, err := Solve(x, obj, LBFGS, quietOpts()...)
	require.NoError(t, err)
	assert.NotSame(t, x, seen)
}

func TestSolveRosenbrock(t *testing.T) {
	captureWarnings(t)
	for _, method := range []Method{BFGS, LBFGS} {
		t.Run(method.String(), func(t *testing.T) {
			x := matrix.New(2, 1, []float32{-1.2, 1})
			_, err := Solve(x, rosenbrock(), method, quietOpts()...)
			require.NoError(t, err)
			assert.InDelta(t, 1, x.RawData()[0], 5e-2)
			assert.InDelta(t, 1, x.RawData()[1], 5e-2)
		})
	}
}

func TestSolveFiniteDifferenceGradient(t *testing.T) {
	captureWarnings(t)
	obj := Funcs{ValueFunc: bowl{}.Value}
	x := matrix.New(2, 1, []float32{2, -3})
	_, err := Solve(x, obj, BFGS, quietOpts()...)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, x.RawData()[0], 1e-2)
	assert.InDelta(t, 0.5, x.RawData()[1], 1e-2)
}

func TestSolveNewtonUsesExactHessian(t *testing.T) {
	calls := 0
	obj := Funcs{
		ValueFunc:    bowl{}.Value,
		GradientFunc: bowl{}.Gradient,
		HessianFunc: func(*matrix.Matrix) *matrix.Matrix {
			calls++
			return matrix.Diag([]float32{2, 2})
		},
	}
	x := matrix.New(2, 1, []float32{0.1, 0.1})
	_, err := Solve(x, obj, Newton, quietOpts()...)
	require.NoError(t, err)
	assert.Greater(t, calls, 0)
	assert.InDelta(t, 0.5, x.RawData()[0], 1e-4)
}

func TestSolveIterationLimitWarns(t *testing.T) {
	w := captureWarnings(t)
	x := matrix.New(2, 1, []float32{-1.2, 1})
	res, err := Solve(x, rosenbrock(), BFGS, quietOpts(WithMaxIterations(2))...)
	require.NoError(t, err)
	assert.False(t, res.Converged())

	warned := w.all()
	require.Len(t, warned, 1)
	var cw *errors.ConvergenceWarning
	require.True(t, errors.As(warned[0], &cw))
	assert.Equal(t, "BFGS", cw.Algorithm)
	assert.NotEqual(t, []float32{-1.2, 1}, x.RawData(), "best point is written back")
}

func TestSolveNonFiniteValueIsError(t *testing.T) {
	obj := Funcs{
		ValueFunc:    func(*matrix.Matrix) float64 { return math.NaN() },
		GradientFunc: bowl{}.Gradient,
	}
	x := matrix.New(2, 1, []float32{0.1, 0.1})
	_, err := Solve(x, obj, BFGS, quietOpts()...)
	var nf *errors.NumericalFailure
	require.True(t, errors.As(err, &nf), "got %v", err)
	assert.Equal(t, []float32{0.1, 0.1}, x.RawData())
}

func TestSolveBadGradientShape(t *testing.T) {
	obj := Funcs{
		ValueFunc:    bowl{}.Value,
		GradientFunc: func(*matrix.Matrix) *matrix.Matrix { return matrix.Zeros(3, 1) },
	}
	_, err := Solve(matrix.New(2, 1, []float32{0.1, 0.1}), obj, BFGS, quietOpts()...)
	var shapeErr *errors.ShapeError
	assert.True(t, errors.As(err, &shapeErr), "got %v", err)
}

func TestSolvePanickingObjective(t *testing.T) {
	obj := Funcs{
		ValueFunc:    func(*matrix.Matrix) float64 { panic("objective") },
		GradientFunc: bowl{}.Gradient,
	}
	_, err := Solve(matrix.New(2, 1, []float32{0.1, 0.1}), obj, BFGS, quietOpts()...)
	var panicErr *errors.PanicError
	assert.True(t, errors.As(err, &panicErr), "got %v", err)
}

func TestSolveValidates(t *testing.T) {
	var vErr *errors.ValidationError

	_, err := Solve(matrix.Zeros(0, 0), bowl{}, BFGS, quietOpts()...)
	assert.True(t, errors.As(err, &vErr))

	_, err = Solve(matrix.Zeros(2, 1), nil, BFGS, quietOpts()...)
	assert.True(t, errors.As(err, &vErr))

	_, err = Solve(matrix.Zeros(2, 1), bowl{}, Method(42), quietOpts()...)
	assert.True(t, errors.As(err, &vErr))
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in   string
		want Method
	}{
		{"", BFGS},
		{"bfgs", BFGS},
		{"CGD", CGD},
		{"Newton", Newton},
		{"neldermead", NelderMead},
		{"LBFGS", LBFGS},
		{"cmaes", CMAES},
	}
	for _, tt := range tests {
		got, err := ParseMethod(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseMethod("simplex")
	var vErr *errors.ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.Equal(t, "UNKNOWN", Method(-1).String())
}

func TestSolveTask(t *testing.T) {
	r := async.NewRunner(async.WithWorkers(1), async.WithLogger(log.NewTestLogger(log.LevelError)))
	defer r.Close()

	x := matrix.New(2, 1, []float32{0.1, 0.1})
	task := SolveTask(x, bowl{}, BFGS, quietOpts()...)
	got, err := r.Start(task).Wait(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []float32{0.1, 0.1}, x.RawData(), "the task works on a copy")
	assert.InDelta(t, 0.5, got.RawData()[0], 1e-2)
	assert.InDelta(t, 0.5, got.RawData()[1], 1e-2)
	assert.InDelta(t, -0.5, task.Summary().F, 1e-3)

	_, err = r.Start(SolveTask(matrix.Zeros(0, 1), bowl{}, BFGS)).Result()
	var vErr *errors.ValidationError
	assert.True(t, errors.As(err, &vErr))
}
