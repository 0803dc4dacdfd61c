package matrix

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/lalg/pkg/errors"
)

func TestNewColumnMajor(t *testing.T) {
	a := New(2, 2, []float32{1, 2, 3, 4})

	tests := []struct {
		r, c int
		want float32
	}{
		{0, 0, 1},
		{1, 0, 2},
		{0, 1, 3},
		{1, 1, 4},
	}
	for _, tt := range tests {
		got, err := a.Get(tt.r, tt.c)
		require.NoError(t, err)
		assert.Equalf(t, tt.want, got, "Get(%d,%d)", tt.r, tt.c)
	}
}

func TestNewCopiesAtMostLen(t *testing.T) {
	short := New(2, 2, []float32{1, 2})
	assert.Equal(t, []float32{1, 2, 0, 0}, short.RawData())

	data := []float32{1, 2, 3, 4, 5}
	long := New(2, 2, data)
	assert.Equal(t, []float32{1, 2, 3, 4}, long.RawData())

	long.RawData()[0] = 99
	assert.Equal(t, float32(1), data[0], "constructor must copy")
}

func TestNewNegativeDimensionPanics(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		var shapeErr *errors.ShapeError
		assert.True(t, errors.As(err, &shapeErr))
	}()
	New(-1, 2, nil)
}

func TestFactories(t *testing.T) {
	z := Zeros(2, 3)
	assert.Equal(t, 2, z.Rows())
	assert.Equal(t, 3, z.Cols())
	assert.Equal(t, 6, z.Len())
	assert.False(t, z.IsVector())

	assert.Equal(t, []float32{1, 1, 1, 1}, Ones(2, 2).RawData())
	assert.Equal(t, []float32{7, 7, 7}, NewFilled(3, 1, 7).RawData())

	// 2x3 eye: ones at (0,0) and (1,1)
	assert.Equal(t, []float32{1, 0, 0, 1, 0, 0}, Eye(2, 3).RawData())

	d := Diag([]float32{1, 2, 3})
	assert.Equal(t, 3, d.Rows())
	assert.Equal(t, []float32{1, 0, 0, 0, 2, 0, 0, 0, 3}, d.RawData())

	dn := DiagN([]float32{4, 5}, 3)
	assert.Equal(t, 3, dn.Rows())
	assert.Equal(t, 2, dn.Cols())
	assert.Equal(t, []float32{4, 0, 0, 0, 5, 0}, dn.RawData())

	empty := Zeros(0, 0)
	assert.Equal(t, 0, empty.Len())
}

func TestFromRows(t *testing.T) {
	m, err := FromRows([][]float32{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, m.RawData())

	_, err = FromRows([][]float32{{1, 2}, {3}})
	var shapeErr *errors.ShapeError
	assert.True(t, errors.As(err, &shapeErr))
}

func TestRandIsSeededAndBounded(t *testing.T) {
	Seed(7)
	a := Rand(4, 5)
	Seed(7)
	b := Rand(4, 5)
	assert.True(t, a.Equal(b), "same seed must reproduce the same matrix")

	for v := range a.Values() {
		assert.GreaterOrEqual(t, v, float32(-10))
		assert.LessOrEqual(t, v, float32(10))
		assert.Equal(t, float32(int(v)), v)
	}

	r1 := RandFrom(rand.New(rand.NewPCG(1, 1)), 3, 3)
	r2 := RandFrom(rand.New(rand.NewPCG(1, 1)), 3, 3)
	assert.True(t, r1.Equal(r2))
}

func TestGetSetIndex(t *testing.T) {
	a := New(2, 3, []float32{1, 2, 3, 4, 5, 6})

	v, err := a.GetIndex(-1)
	require.NoError(t, err)
	assert.Equal(t, float32(6), v)

	v, err = a.GetIndex(-6)
	require.NoError(t, err)
	assert.Equal(t, float32(1), v)

	prev, err := a.SetIndex(2, 30)
	require.NoError(t, err)
	assert.Equal(t, float32(3), prev)
	got, _ := a.Get(0, 1)
	assert.Equal(t, float32(30), got)

	prev, err = a.Set(1, 2, 60)
	require.NoError(t, err)
	assert.Equal(t, float32(6), prev)
	last, _ := a.GetIndex(-1)
	assert.Equal(t, float32(60), last)
}

func TestIndexOutOfRange(t *testing.T) {
	a := Zeros(2, 3)
	tests := []struct {
		name string
		call func() error
	}{
		{"linear past end", func() error { _, err := a.GetIndex(6); return err }},
		{"linear before start", func() error { _, err := a.GetIndex(-7); return err }},
		{"row", func() error { _, err := a.Get(2, 0); return err }},
		{"negative col", func() error { _, err := a.Get(0, -1); return err }},
		{"set", func() error { _, err := a.Set(0, 3, 1); return err }},
		{"set index", func() error { _, err := a.SetIndex(100, 1); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			var idxErr *errors.IndexOutOfRange
			require.True(t, errors.As(err, &idxErr), "got %v", err)
		})
	}
}

func TestDupIsDeep(t *testing.T) {
	a := New(2, 2, []float32{1, 2, 3, 4})
	a.SetName("A")
	b := a.Dup()
	_, _ = b.Set(0, 0, 100)

	v, _ := a.Get(0, 0)
	assert.Equal(t, float32(1), v)
	assert.Equal(t, "A", b.Name())
	assert.Equal(t, 2, b.Rows())
}

func TestValuesStopsEarly(t *testing.T) {
	a := New(1, 4, []float32{1, 2, 3, 4})
	var seen []float32
	for v := range a.Values() {
		seen = append(seen, v)
		if v == 2 {
			break
		}
	}
	assert.Equal(t, []float32{1, 2}, seen)
	assert.Equal(t, []float32{1, 2, 3, 4}, slices.Collect(a.Values()))
}

func TestEqualApprox(t *testing.T) {
	a := New(1, 2, []float32{1, 2})
	assert.True(t, a.EqualApprox(New(1, 2, []float32{1.0005, 2}), 1e-3))
	assert.False(t, a.EqualApprox(New(1, 2, []float32{1.1, 2}), 1e-3))
	assert.False(t, a.EqualApprox(New(2, 1, []float32{1, 2}), 1))
}
