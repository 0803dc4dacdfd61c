package matrix

import (
	"github.com/YuminosukeSato/lalg/core/buffer"
	"github.com/YuminosukeSato/lalg/pkg/errors"
)

// Transpose returns the n×m transpose. For a vector only the shape changes.
func (m *Matrix) Transpose() *Matrix {
	rows, cols := m.Rows(), m.Cols()
	src := m.buf.Live()
	out := &Matrix{buf: buffer.New(cols, rows), name: m.name, maxPrint: m.maxPrint}
	dst := out.buf.Live()
	if m.IsVector() {
		copy(dst, src)
		return out
	}
	ix := 0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			dst[ix] = src[r+c*rows]
			ix++
		}
	}
	return out
}

// GetRows gathers the given rows, in the requested order, into a new len(idx)×n matrix.
func (m *Matrix) GetRows(idx ...int) (*Matrix, error) {
	rows, cols := m.Rows(), m.Cols()
	for _, r := range idx {
		if r < 0 || r >= rows {
			return nil, errors.NewIndexOutOfRange2D("GetRows", r, 0, rows, cols)
		}
	}
	k := len(idx)
	out := Zeros(k, cols)
	src, dst := m.buf.Live(), out.buf.Live()
	for c := 0; c < cols; c++ {
		for i, r := range idx {
			dst[c*k+i] = src[c*rows+r]
		}
	}
	return out, nil
}

// GetColumns gathers the given columns, in the requested order, into a new m×len(idx) matrix.
func (m *Matrix) GetColumns(idx ...int) (*Matrix, error) {
	rows, cols := m.Rows(), m.Cols()
	for _, c := range idx {
		if c < 0 || c >= cols {
			return nil, errors.NewIndexOutOfRange2D("GetColumns", 0, c, rows, cols)
		}
	}
	out := Zeros(rows, len(idx))
	src, dst := m.buf.Live(), out.buf.Live()
	for i, c := range idx {
		copy(dst[i*rows:(i+1)*rows], src[c*rows:(c+1)*rows])
	}
	return out, nil
}

// RemoveRow deletes row r from m in place and returns it as a 1×n matrix.
func (m *Matrix) RemoveRow(r int) (*Matrix, error) {
	rows, cols := m.Rows(), m.Cols()
	if r < 0 || r >= rows {
		return nil, errors.NewIndexOutOfRange2D("RemoveRow", r, 0, rows, cols)
	}
	removed := Zeros(1, cols)
	data, out := m.buf.Live(), removed.buf.Live()

	// Compact in place: each surviving element moves left by the number of
	// removed elements before it, so a forward pass never overwrites unread data.
	dst := 0
	for c := 0; c < cols; c++ {
		for i := 0; i < rows; i++ {
			v := data[c*rows+i]
			if i == r {
				out[c] = v
				continue
			}
			data[dst] = v
			dst++
		}
	}
	m.buf.Reshape(rows-1, cols)
	return removed, nil
}

// RemoveColumn deletes column c from m in place and returns it as an m×1 matrix.
func (m *Matrix) RemoveColumn(c int) (*Matrix, error) {
	rows, cols := m.Rows(), m.Cols()
	if c < 0 || c >= cols {
		return nil, errors.NewIndexOutOfRange2D("RemoveColumn", 0, c, rows, cols)
	}
	removed := Zeros(rows, 1)
	data := m.buf.Live()
	copy(removed.buf.Live(), data[c*rows:(c+1)*rows])
	copy(data[c*rows:], data[(c+1)*rows:])
	m.buf.Reshape(rows, cols-1)
	return removed, nil
}

// AppendColumns returns a new m×(n+k) matrix holding m's columns followed by other's.
func (m *Matrix) AppendColumns(other *Matrix) (*Matrix, error) {
	rows, cols := m.Rows(), m.Cols()
	if other.Rows() != rows {
		return nil, errors.NewShapeError("AppendColumns", rows, cols, other.Rows(), other.Cols())
	}
	out := Zeros(rows, cols+other.Cols())
	dst := out.buf.Live()
	n := copy(dst, m.buf.Live())
	copy(dst[n:], other.buf.Live())
	return out, nil
}

// RotateColumns returns a copy with columns cyclically rotated left by count.
// Negative counts rotate right.
func (m *Matrix) RotateColumns(count int) *Matrix {
	rows, cols := m.Rows(), m.Cols()
	out := m.Dup()
	if cols == 0 {
		return out
	}
	shift := ((count % cols) + cols) % cols
	if shift == 0 {
		return out
	}
	src, dst := m.buf.Live(), out.buf.Live()
	split := shift * rows
	n := copy(dst, src[split:])
	copy(dst[n:], src[:split])
	return out
}

// Reshape changes the shape to rows×cols in place, keeping the column-major
// element order. Storage grows when needed and is never shrunk; elements that
// become visible beyond the previous length are zero.
func (m *Matrix) Reshape(rows, cols int) {
	checkDims("Reshape", rows, cols)
	m.buf.GrowIfNeeded(rows, cols)
}

// Flatten reshapes m in place to a Len()×1 column vector.
func (m *Matrix) Flatten() {
	m.Reshape(m.Len(), 1)
}
