// Package buffer holds the flat float32 storage behind a matrix together with
// its logical shape. Elements are column-major: (r, c) lives at c*rows + r.
package buffer

import "fmt"

// Buffer owns a contiguous float32 allocation. Capacity may exceed Rows*Cols
// after a shape shrink; only the first Rows*Cols elements are live.
type Buffer struct {
	rows, cols int
	data       []float32
}

// New allocates a zero-filled buffer of rows*cols elements.
// It panics when either dimension is negative.
func New(rows, cols int) *Buffer {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("buffer: negative dimension %d x %d", rows, cols))
	}
	return &Buffer{rows: rows, cols: cols, data: make([]float32, rows*cols)}
}

// Wrap adopts data as storage without copying. len(data) must be at least rows*cols.
func Wrap(rows, cols int, data []float32) *Buffer {
	if rows < 0 || cols < 0 || len(data) < rows*cols {
		panic(fmt.Sprintf("buffer: cannot wrap %d values as %d x %d", len(data), rows, cols))
	}
	return &Buffer{rows: rows, cols: cols, data: data}
}

// Rows returns the logical row count.
func (b *Buffer) Rows() int { return b.rows }

// Cols returns the logical column count.
func (b *Buffer) Cols() int { return b.cols }

// Len returns Rows*Cols.
func (b *Buffer) Len() int { return b.rows * b.cols }

// Cap returns the number of allocated elements.
func (b *Buffer) Cap() int { return len(b.data) }

// Data returns the full allocation, including any slack beyond Len.
func (b *Buffer) Data() []float32 { return b.data }

// Live returns the first Len elements. The slice aliases the buffer.
func (b *Buffer) Live() []float32 { return b.data[:b.rows*b.cols] }

// GrowIfNeeded sets the shape to rows x cols, reallocating only when the new
// element count exceeds the current capacity. Live values are preserved in
// linear order; any newly exposed elements are zero.
func (b *Buffer) GrowIfNeeded(rows, cols int) {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("buffer: negative dimension %d x %d", rows, cols))
	}
	need := rows * cols
	if need > len(b.data) {
		next := make([]float32, need)
		copy(next, b.data[:b.rows*b.cols])
		b.data = next
	} else if old := b.rows * b.cols; need > old {
		clear(b.data[old:need])
	}
	b.rows, b.cols = rows, cols
}

// Reserve grows the allocation to at least capacity elements without changing the shape.
func (b *Buffer) Reserve(capacity int) {
	if capacity <= len(b.data) {
		return
	}
	next := make([]float32, capacity)
	copy(next, b.data)
	b.data = next
}

// Reshape changes the logical shape without touching storage.
// The caller guarantees rows*cols <= Cap.
func (b *Buffer) Reshape(rows, cols int) {
	if rows < 0 || cols < 0 || rows*cols > len(b.data) {
		panic(fmt.Sprintf("buffer: reshape %d x %d exceeds capacity %d", rows, cols, len(b.data)))
	}
	b.rows, b.cols = rows, cols
}

// Replace swaps in new storage and shape, e.g. after an out-of-place transpose.
func (b *Buffer) Replace(rows, cols int, data []float32) {
	if len(data) < rows*cols {
		panic(fmt.Sprintf("buffer: replacement of %d values too small for %d x %d", len(data), rows, cols))
	}
	b.rows, b.cols, b.data = rows, cols, data
}

// Release drops the storage and resets the shape to 0 x 0. Calling it again is a no-op.
func (b *Buffer) Release() {
	b.data = nil
	b.rows, b.cols = 0, 0
}

// Clone returns a deep copy whose capacity equals Len.
func (b *Buffer) Clone() *Buffer {
	data := make([]float32, b.rows*b.cols)
	copy(data, b.data)
	return &Buffer{rows: b.rows, cols: b.cols, data: data}
}
