package matrix

import (
	"github.com/viterin/vek/vek32"

	"github.com/YuminosukeSato/lalg/core/kernel"
	"github.com/YuminosukeSato/lalg/core/parallel"
	"github.com/YuminosukeSato/lalg/pkg/errors"
)

// Operand is the right-hand side of an arithmetic operation: either a scalar
// or a matrix. The zero value is the scalar 0.
type Operand struct {
	scalar float32
	matrix *Matrix
}

// Scalar wraps a scalar operand.
func Scalar(v float32) Operand { return Operand{scalar: v} }

// Mat wraps a matrix operand.
func Mat(m *Matrix) Operand { return Operand{matrix: m} }

// IsScalar reports whether the operand holds a scalar.
func (o Operand) IsScalar() bool { return o.matrix == nil }

// ScalarValue returns the scalar value. It is 0 for a matrix operand.
func (o Operand) ScalarValue() float32 { return o.scalar }

// Matrix returns the matrix operand, or nil for a scalar.
func (o Operand) Matrix() *Matrix { return o.matrix }

// elementwise describes a binary elementwise operator in its two in-place forms.
type elementwise struct {
	name string
	vec  func(dst, src []float32)
	num  func(dst []float32, a float32)
}

var (
	addOp      = elementwise{name: "Add", vec: vek32.Add_Inplace, num: vek32.AddNumber_Inplace}
	subOp      = elementwise{name: "Sub", vec: vek32.Sub_Inplace, num: vek32.SubNumber_Inplace}
	hadamardOp = elementwise{name: "Hadamard", vec: vek32.Mul_Inplace, num: vek32.MulNumber_Inplace}
)

type broadcastKind int

const (
	broadcastSame broadcastKind = iota
	broadcastRow
	broadcastColumn
)

// broadcastWith classifies other against m: identical shape, a 1×n row
// vector or an m×1 column vector, checked in that order.
func (m *Matrix) broadcastWith(op string, other *Matrix) (broadcastKind, error) {
	rows, cols := m.Rows(), m.Cols()
	switch {
	case other.Rows() == rows && other.Cols() == cols:
		return broadcastSame, nil
	case other.Rows() == 1 && other.Cols() == cols:
		return broadcastRow, nil
	case other.Cols() == 1 && other.Rows() == rows:
		return broadcastColumn, nil
	default:
		return 0, errors.NewShapeError(op, rows, cols, other.Rows(), other.Cols())
	}
}

// forColumns runs fn over column ranges, in parallel for large matrices.
func forColumns(rows, cols int, fn func(c0, c1 int)) {
	if rows*cols < parallel.Threshold() || cols < 2 {
		fn(0, cols)
		return
	}
	parallel.Parallelize(cols, fn)
}

// applyScalar performs dst op= a over every element.
func applyScalar(op elementwise, dst []float32, a float32) {
	if len(dst) == 0 {
		return
	}
	if len(dst) < parallel.Threshold() {
		op.num(dst, a)
		return
	}
	parallel.Parallelize(len(dst), func(s, e int) {
		op.num(dst[s:e], a)
	})
}

// applyInPlace performs m op= other with broadcasting.
func (m *Matrix) applyInPlace(op elementwise, other *Matrix) error {
	kind, err := m.broadcastWith(op.name, other)
	if err != nil {
		return err
	}
	rows, cols := m.Rows(), m.Cols()
	dst, src := m.buf.Live(), other.buf.Live()
	if len(dst) == 0 {
		return nil
	}
	switch kind {
	case broadcastSame:
		if len(dst) < parallel.Threshold() {
			op.vec(dst, src)
			return nil
		}
		parallel.Parallelize(len(dst), func(s, e int) {
			op.vec(dst[s:e], src[s:e])
		})
	case broadcastRow:
		forColumns(rows, cols, func(c0, c1 int) {
			for c := c0; c < c1; c++ {
				op.num(dst[c*rows:(c+1)*rows], src[c])
			}
		})
	case broadcastColumn:
		forColumns(rows, cols, func(c0, c1 int) {
			for c := c0; c < c1; c++ {
				op.vec(dst[c*rows:(c+1)*rows], src)
			}
		})
	}
	return nil
}

func (m *Matrix) applyOperand(op elementwise, o Operand) (*Matrix, error) {
	if !o.IsScalar() {
		if _, err := m.broadcastWith(op.name, o.matrix); err != nil {
			return nil, err
		}
	}
	out := m.Dup()
	if o.IsScalar() {
		applyScalar(op, out.buf.Live(), o.scalar)
		return out, nil
	}
	return out, out.applyInPlace(op, o.matrix)
}

// Add returns m + other with row/column vector broadcasting.
func (m *Matrix) Add(other *Matrix) (*Matrix, error) {
	return m.applyOperand(addOp, Mat(other))
}

// Sub returns m - other with row/column vector broadcasting.
func (m *Matrix) Sub(other *Matrix) (*Matrix, error) {
	return m.applyOperand(subOp, Mat(other))
}

// Hadamard returns the elementwise product with row/column vector broadcasting.
func (m *Matrix) Hadamard(other *Matrix) (*Matrix, error) {
	return m.applyOperand(hadamardOp, Mat(other))
}

// AddOperand adds a scalar or a broadcastable matrix.
func (m *Matrix) AddOperand(o Operand) (*Matrix, error) { return m.applyOperand(addOp, o) }

// SubOperand subtracts a scalar or a broadcastable matrix.
func (m *Matrix) SubOperand(o Operand) (*Matrix, error) { return m.applyOperand(subOp, o) }

// HadamardOperand multiplies elementwise by a scalar or a broadcastable matrix.
func (m *Matrix) HadamardOperand(o Operand) (*Matrix, error) {
	return m.applyOperand(hadamardOp, o)
}

// AddInPlace performs m += other.
func (m *Matrix) AddInPlace(other *Matrix) error { return m.applyInPlace(addOp, other) }

// SubInPlace performs m -= other.
func (m *Matrix) SubInPlace(other *Matrix) error { return m.applyInPlace(subOp, other) }

// HadamardInPlace performs m ∘= other.
func (m *Matrix) HadamardInPlace(other *Matrix) error { return m.applyInPlace(hadamardOp, other) }

// AddScalar returns m + v elementwise.
func (m *Matrix) AddScalar(v float32) *Matrix {
	out := m.Dup()
	applyScalar(addOp, out.buf.Live(), v)
	return out
}

// SubScalar returns m - v elementwise.
func (m *Matrix) SubScalar(v float32) *Matrix {
	out := m.Dup()
	applyScalar(subOp, out.buf.Live(), v)
	return out
}

// Scale returns m * f elementwise.
func (m *Matrix) Scale(f float32) *Matrix {
	out := m.Dup()
	out.ScaleInPlace(f)
	return out
}

// ScaleInPlace multiplies every element by f.
func (m *Matrix) ScaleInPlace(f float32) {
	applyScalar(hadamardOp, m.buf.Live(), f)
}

// CheckMul validates the shapes of m·other.
func (m *Matrix) CheckMul(other *Matrix) error {
	if m.Cols() != other.Rows() {
		return errors.NewShapeError("Mul", m.Rows(), m.Cols(), other.Rows(), other.Cols())
	}
	return nil
}

// Mul returns the matrix product m·other.
func (m *Matrix) Mul(other *Matrix) (*Matrix, error) {
	if err := m.CheckMul(other); err != nil {
		return nil, err
	}
	out := Zeros(m.Rows(), other.Cols())
	m.mulInto(out, other)
	return out, nil
}

// MulInto writes m·other into dst, which must already be m.Rows()×other.Cols().
func (m *Matrix) MulInto(dst, other *Matrix) error {
	if err := m.CheckMul(other); err != nil {
		return err
	}
	if dst.Rows() != m.Rows() || dst.Cols() != other.Cols() {
		return errors.NewShapeError("MulInto", dst.Rows(), dst.Cols(), m.Rows(), other.Cols())
	}
	m.mulInto(dst, other)
	return nil
}

func (m *Matrix) mulInto(dst, other *Matrix) {
	rows, inner, cols := m.Rows(), m.Cols(), other.Cols()
	kernel.Gemm(false, false, rows, cols, inner,
		m.buf.Live(), max(1, rows),
		other.buf.Live(), max(1, inner),
		dst.buf.Live(), max(1, rows))
}

// MulOperand multiplies by a matrix, or scales when the operand is a scalar.
func (m *Matrix) MulOperand(o Operand) (*Matrix, error) {
	if o.IsScalar() {
		return m.Scale(o.scalar), nil
	}
	return m.Mul(o.matrix)
}
