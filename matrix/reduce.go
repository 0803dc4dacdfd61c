package matrix

import (
	"github.com/chewxy/math32"
	"github.com/viterin/vek/vek32"

	"github.com/YuminosukeSato/lalg/core/kernel"
	"github.com/YuminosukeSato/lalg/pkg/errors"
)

// Axis selects the dimension a reduction collapses.
type Axis int

const (
	// AxisColumns reduces each column to one entry of a 1×n row vector.
	AxisColumns Axis = 0
	// AxisRows reduces each row to one entry of an m×1 column vector.
	AxisRows Axis = 1
)

// Reduced is the result of Sum, Mean or Norm. Vector inputs reduce to a
// scalar and Vector is nil; matrix inputs reduce to a row or column vector.
type Reduced struct {
	Scalar float32
	Vector *Matrix
}

// IsScalar reports whether the reduction produced a scalar.
func (r Reduced) IsScalar() bool { return r.Vector == nil }

// Asum returns the sum of absolute values of all elements.
func (m *Matrix) Asum() float32 {
	return kernel.Asum(m.buf.Live())
}

func checkAxis(axis Axis) error {
	if axis != AxisColumns && axis != AxisRows {
		return errors.NewValidationError("axis", "must be 0 (columns) or 1 (rows)", int(axis))
	}
	return nil
}

func sum32(x []float32) float32 {
	if len(x) == 0 {
		return 0
	}
	return vek32.Sum(x)
}

func sumSquares(x []float32) float32 {
	if len(x) == 0 {
		return 0
	}
	return vek32.Dot(x, x)
}

// reduce applies colFn to each column for AxisColumns; for AxisRows it
// folds columns into an accumulator with accumulate and then finishes each
// entry with finish.
func (m *Matrix) reduce(axis Axis, whole func([]float32) float32, accumulate func(acc, col []float32), finish func(acc []float32)) (Reduced, error) {
	if err := checkAxis(axis); err != nil {
		return Reduced{}, err
	}
	data := m.buf.Live()
	if m.IsVector() {
		return Reduced{Scalar: whole(data)}, nil
	}
	rows, cols := m.Rows(), m.Cols()
	if axis == AxisColumns {
		out := Zeros(1, cols)
		res := out.buf.Live()
		forColumns(rows, cols, func(c0, c1 int) {
			for c := c0; c < c1; c++ {
				res[c] = whole(data[c*rows : (c+1)*rows])
			}
		})
		return Reduced{Vector: out}, nil
	}
	out := Zeros(rows, 1)
	acc := out.buf.Live()
	if rows > 0 {
		for c := 0; c < cols; c++ {
			accumulate(acc, data[c*rows:(c+1)*rows])
		}
	}
	if finish != nil {
		finish(acc)
	}
	return Reduced{Vector: out}, nil
}

// Sum adds the elements along axis. A vector reduces to a scalar.
func (m *Matrix) Sum(axis Axis) (Reduced, error) {
	return m.reduce(axis, sum32, addColumn, nil)
}

// Mean averages the elements along axis, dividing by the reduced axis length.
func (m *Matrix) Mean(axis Axis) (Reduced, error) {
	n := float32(m.Len())
	rows, cols := float32(m.Rows()), float32(m.Cols())
	return m.reduce(axis,
		func(x []float32) float32 {
			if m.IsVector() {
				return sum32(x) / n
			}
			return sum32(x) / rows
		},
		addColumn,
		func(acc []float32) {
			if len(acc) > 0 {
				vek32.DivNumber_Inplace(acc, cols)
			}
		})
}

// Norm returns the Euclidean norm along axis.
func (m *Matrix) Norm(axis Axis) (Reduced, error) {
	return m.reduce(axis,
		func(x []float32) float32 { return math32.Sqrt(sumSquares(x)) },
		func(acc, col []float32) {
			for i, v := range col {
				acc[i] += v * v
			}
		},
		func(acc []float32) {
			for i, v := range acc {
				acc[i] = math32.Sqrt(v)
			}
		})
}

func addColumn(acc, col []float32) {
	vek32.Add_Inplace(acc, col)
}
