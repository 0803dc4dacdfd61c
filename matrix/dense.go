package matrix

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/lalg/pkg/errors"
)

var _ mat.Matrix = (*Matrix)(nil)

// Dims returns the dimensions of the matrix. Together with At and T it
// lets a *Matrix be passed to gonum's mat functions directly.
func (m *Matrix) Dims() (r, c int) {
	return m.Rows(), m.Cols()
}

// At returns element (i, j) as float64. It panics when out of range,
// following mat.Matrix.
func (m *Matrix) At(i, j int) float64 {
	v, err := m.Get(i, j)
	if err != nil {
		panic(err)
	}
	return float64(v)
}

// T returns an implicit transpose view for gonum.
func (m *Matrix) T() mat.Matrix {
	return mat.Transpose{Matrix: m}
}

// ToDense copies m into a float64 gonum Dense.
func (m *Matrix) ToDense() *mat.Dense {
	rows, cols := m.Rows(), m.Cols()
	if rows == 0 || cols == 0 {
		return &mat.Dense{}
	}
	d := mat.NewDense(rows, cols, nil)
	data := m.buf.Live()
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			d.Set(r, c, float64(data[c*rows+r]))
		}
	}
	return d
}

// FromDense copies any gonum matrix into a new Matrix, narrowing to float32.
func FromDense(a mat.Matrix) *Matrix {
	rows, cols := a.Dims()
	out := Zeros(rows, cols)
	data := out.buf.Live()
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			data[c*rows+r] = float32(a.At(r, c))
		}
	}
	return out
}

// CheckFinite reports a NumericalFailure if any element is NaN or infinite.
func (m *Matrix) CheckFinite(op string) error {
	return errors.CheckMatrix(op, m)
}
