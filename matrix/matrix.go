// Package matrix implements a dense, column-major float32 matrix value type.
//
// Element (r, c) of an m×n matrix is stored at offset c*m + r. Every
// operation documented as returning a new matrix allocates a fresh buffer;
// methods with an InPlace suffix, Set, Reshape and the Remove methods mutate
// the receiver. A Matrix carries no internal locking: callers sharing one
// across goroutines must serialize writes.
package matrix

import (
	"fmt"
	"iter"

	"github.com/YuminosukeSato/lalg/core/buffer"
	"github.com/YuminosukeSato/lalg/pkg/errors"
)

// DefaultMaxPrintExtent is the number of rows and columns String prints.
const DefaultMaxPrintExtent = 10

// Matrix is a dense m×n single-precision matrix.
type Matrix struct {
	buf      *buffer.Buffer
	name     string
	maxPrint int
}

func newMatrix(buf *buffer.Buffer) *Matrix {
	return &Matrix{buf: buf, maxPrint: DefaultMaxPrintExtent}
}

func checkDims(op string, rows, cols int) {
	if rows < 0 || cols < 0 {
		panic(errors.NewUnaryShapeError(op, rows, cols, "negative dimension"))
	}
}

// New creates an m×n matrix. Up to m*n values are copied from data in
// column-major order; elements beyond len(data) are zero.
// It panics with a ShapeError when a dimension is negative.
func New(rows, cols int, data []float32) *Matrix {
	checkDims("New", rows, cols)
	buf := buffer.New(rows, cols)
	copy(buf.Live(), data)
	return newMatrix(buf)
}

// Wrap adopts data as the column-major storage of an m×n matrix without
// copying. The caller must not use data afterwards. It panics when data
// holds fewer than m*n values.
func Wrap(rows, cols int, data []float32) *Matrix {
	checkDims("Wrap", rows, cols)
	if len(data) < rows*cols {
		panic(errors.NewUnaryShapeError("Wrap", rows, cols, fmt.Sprintf("only %d values supplied", len(data))))
	}
	return newMatrix(buffer.Wrap(rows, cols, data))
}

// NewFilled creates an m×n matrix with every element set to v.
func NewFilled(rows, cols int, v float32) *Matrix {
	checkDims("NewFilled", rows, cols)
	buf := buffer.New(rows, cols)
	if v != 0 {
		live := buf.Live()
		for i := range live {
			live[i] = v
		}
	}
	return newMatrix(buf)
}

// FromRows builds a matrix from row slices. All rows must have the same length.
func FromRows(rows [][]float32) (*Matrix, error) {
	m := len(rows)
	if m == 0 {
		return Zeros(0, 0), nil
	}
	n := len(rows[0])
	out := Zeros(m, n)
	data := out.buf.Live()
	for r, row := range rows {
		if len(row) != n {
			return nil, errors.NewShapeError("FromRows", 1, n, 1, len(row))
		}
		for c, v := range row {
			data[c*m+r] = v
		}
	}
	return out, nil
}

// Zeros creates an m×n matrix of zeros.
func Zeros(rows, cols int) *Matrix {
	return NewFilled(rows, cols, 0)
}

// Ones creates an m×n matrix of ones.
func Ones(rows, cols int) *Matrix {
	return NewFilled(rows, cols, 1)
}

// Eye creates an m×n matrix with ones on the leading diagonal.
func Eye(rows, cols int) *Matrix {
	out := Zeros(rows, cols)
	data := out.buf.Live()
	for i := 0; i < min(rows, cols); i++ {
		data[i*rows+i] = 1
	}
	return out
}

// Diag creates a square matrix with v's elements on the diagonal.
func Diag(v []float32) *Matrix {
	return DiagN(v, len(v))
}

// DiagN creates an m×len(v) matrix with v's elements on the leading diagonal.
// Diagonal entries beyond row m-1 are dropped.
func DiagN(v []float32, rows int) *Matrix {
	out := Zeros(rows, len(v))
	data := out.buf.Live()
	for i := 0; i < min(rows, len(v)); i++ {
		data[i*rows+i] = v[i]
	}
	return out
}

// Rows returns m.
func (m *Matrix) Rows() int { return m.buf.Rows() }

// Cols returns n.
func (m *Matrix) Cols() int { return m.buf.Cols() }

// Len returns m*n.
func (m *Matrix) Len() int { return m.buf.Len() }

// Cap returns the allocated element count, which may exceed Len after a shrinking Reshape.
func (m *Matrix) Cap() int { return m.buf.Cap() }

// IsVector reports whether the matrix has a single row or a single column.
func (m *Matrix) IsVector() bool { return m.Rows() == 1 || m.Cols() == 1 }

// Name returns the display name used by String.
func (m *Matrix) Name() string { return m.name }

// SetName sets the display name used by String.
func (m *Matrix) SetName(name string) { m.name = name }

// MaxPrintExtent returns how many rows and columns String prints.
func (m *Matrix) MaxPrintExtent() int { return m.maxPrint }

// SetMaxPrintExtent sets how many rows and columns String prints.
func (m *Matrix) SetMaxPrintExtent(n int) {
	if n < 0 {
		n = 0
	}
	m.maxPrint = n
}

// RawData returns the live column-major elements. The slice aliases the
// matrix and is invalidated by any reallocating operation.
func (m *Matrix) RawData() []float32 { return m.buf.Live() }

// Values iterates the elements in column-major order.
func (m *Matrix) Values() iter.Seq[float32] {
	return func(yield func(float32) bool) {
		for _, v := range m.buf.Live() {
			if !yield(v) {
				return
			}
		}
	}
}

// Dup returns a deep copy with the same shape, contents, name and print extent.
func (m *Matrix) Dup() *Matrix {
	return &Matrix{buf: m.buf.Clone(), name: m.name, maxPrint: m.maxPrint}
}

// linearIndex resolves a possibly negative linear index.
func (m *Matrix) linearIndex(op string, i int) (int, error) {
	n := m.Len()
	if i < -n || i >= n {
		return 0, errors.NewIndexOutOfRange(op, i, n)
	}
	if i < 0 {
		i += n
	}
	return i, nil
}

func (m *Matrix) offset(op string, r, c int) (int, error) {
	rows, cols := m.Rows(), m.Cols()
	if r < 0 || r >= rows || c < 0 || c >= cols {
		return 0, errors.NewIndexOutOfRange2D(op, r, c, rows, cols)
	}
	return c*rows + r, nil
}

// Get returns element (r, c).
func (m *Matrix) Get(r, c int) (float32, error) {
	off, err := m.offset("Get", r, c)
	if err != nil {
		return 0, err
	}
	return m.buf.Live()[off], nil
}

// GetIndex returns the element at column-major linear index i.
// Negative indices count from the end, so -1 is the last element.
func (m *Matrix) GetIndex(i int) (float32, error) {
	off, err := m.linearIndex("Get", i)
	if err != nil {
		return 0, err
	}
	return m.buf.Live()[off], nil
}

// Set stores v at (r, c) and returns the previous value.
func (m *Matrix) Set(r, c int, v float32) (float32, error) {
	off, err := m.offset("Set", r, c)
	if err != nil {
		return 0, err
	}
	data := m.buf.Live()
	prev := data[off]
	data[off] = v
	return prev, nil
}

// SetIndex stores v at linear index i and returns the previous value.
func (m *Matrix) SetIndex(i int, v float32) (float32, error) {
	off, err := m.linearIndex("Set", i)
	if err != nil {
		return 0, err
	}
	data := m.buf.Live()
	prev := data[off]
	data[off] = v
	return prev, nil
}

// Equal reports whether m and o have the same shape and identical elements.
func (m *Matrix) Equal(o *Matrix) bool {
	return m.EqualApprox(o, 0)
}

// EqualApprox reports whether m and o have the same shape and every pair of
// elements differs by at most tol.
func (m *Matrix) EqualApprox(o *Matrix, tol float32) bool {
	if m.Rows() != o.Rows() || m.Cols() != o.Cols() {
		return false
	}
	b := o.buf.Live()
	for i, v := range m.buf.Live() {
		d := v - b[i]
		if d < 0 {
			d = -d
		}
		if !(d <= tol) {
			return false
		}
	}
	return true
}
