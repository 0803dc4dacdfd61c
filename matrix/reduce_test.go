package matrix

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/lalg/pkg/errors"
)

func TestAsum(t *testing.T) {
	a := New(2, 2, []float32{1, -2, 3, -4})
	assert.Equal(t, float32(10), a.Asum())
}

func TestReductionsOnMatrix(t *testing.T) {
	a := New(2, 3, []float32{1, 2, 3, 4, 5, 6}) // [1 3 5; 2 4 6]

	tests := []struct {
		name   string
		reduce func(*Matrix, Axis) (Reduced, error)
		axis   Axis
		rows   int
		cols   int
		want   []float32
	}{
		{"sum columns", (*Matrix).Sum, AxisColumns, 1, 3, []float32{3, 7, 11}},
		{"sum rows", (*Matrix).Sum, AxisRows, 2, 1, []float32{9, 12}},
		{"mean columns", (*Matrix).Mean, AxisColumns, 1, 3, []float32{1.5, 3.5, 5.5}},
		{"mean rows", (*Matrix).Mean, AxisRows, 2, 1, []float32{3, 4}},
		{"norm columns", (*Matrix).Norm, AxisColumns, 1, 3, []float32{
			float32(math.Sqrt(5)), float32(math.Sqrt(25)), float32(math.Sqrt(61)),
		}},
		{"norm rows", (*Matrix).Norm, AxisRows, 2, 1, []float32{
			float32(math.Sqrt(35)), float32(math.Sqrt(56)),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.reduce(a, tt.axis)
			require.NoError(t, err)
			require.False(t, got.IsScalar())
			assert.Equal(t, tt.rows, got.Vector.Rows())
			assert.Equal(t, tt.cols, got.Vector.Cols())
			for i, w := range tt.want {
				assert.InDelta(t, w, got.Vector.RawData()[i], 1e-5)
			}
		})
	}
}

func TestReductionsOnVector(t *testing.T) {
	v := New(1, 4, []float32{1, 2, 3, 4})

	sum, err := v.Sum(AxisColumns)
	require.NoError(t, err)
	require.True(t, sum.IsScalar())
	assert.Equal(t, float32(10), sum.Scalar)

	mean, err := v.Transpose().Mean(AxisRows)
	require.NoError(t, err)
	assert.Equal(t, float32(2.5), mean.Scalar)

	norm, err := v.Norm(AxisColumns)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(30), norm.Scalar, 1e-5)
}

func TestReductionRejectsBadAxis(t *testing.T) {
	_, err := Zeros(2, 2).Sum(Axis(2))
	var vErr *errors.ValidationError
	assert.True(t, errors.As(err, &vErr))
}

func TestUnaryMaps(t *testing.T) {
	a := New(1, 4, []float32{4, -1, 0, 1})

	assert.Equal(t, []float32{-4, 1, 0, -1}, a.Neg().RawData())
	assert.Equal(t, []float32{4, 1, 0, 1}, a.Abs().RawData())

	sq := a.Sqrt().RawData()
	assert.Equal(t, float32(2), sq[0])
	assert.True(t, math.IsNaN(float64(sq[1])))
	assert.Equal(t, float32(0), sq[2])

	lg := a.Log().RawData()
	assert.InDelta(t, math.Log(4), lg[0], 1e-6)
	assert.True(t, math.IsNaN(float64(lg[1])))
	assert.True(t, math.IsInf(float64(lg[2]), -1))
	assert.Equal(t, float32(0), lg[3])

	assert.Equal(t, []float32{4, -1, 0, 1}, a.RawData(), "unary maps must not mutate")
}

func TestFind(t *testing.T) {
	a := New(1, 5, []float32{1, 2, 1.0000001, 3, -1})

	assert.Equal(t, []float32{1, 0, 1.0000001, 0, 0}, a.FindEqual(1).RawData())
	assert.Equal(t, []float32{9, 0, 9, 0, 0}, a.FindEqual(1, WithReplacement(9)).RawData())
	assert.Equal(t, []float32{1, 2, 1.0000001, 0, 0}, a.FindEqual(1.5, WithEpsilon(0.6)).RawData())

	assert.Equal(t, []float32{0, 2, 0, 3, 0}, a.FindGreater(1.5).RawData())
	assert.Equal(t, []float32{0, 1, 0, 1, 0}, a.FindGreater(1.5, WithReplacement(1)).RawData())

	assert.Equal(t, []float32{1, 0, 0, 0, -1}, a.FindLessOrEqual(1).RawData())
}
