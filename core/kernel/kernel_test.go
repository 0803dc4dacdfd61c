package kernel

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// naiveMul multiplies column-major op(A)·op(B) without BLAS.
func naiveMul(transA, transB bool, m, n, k int, a []float32, lda int, b []float32, ldb int) []float32 {
	at := func(i, l int) float32 {
		if transA {
			return a[i*lda+l]
		}
		return a[l*lda+i]
	}
	bt := func(l, j int) float32 {
		if transB {
			return b[l*ldb+j]
		}
		return b[j*ldb+l]
	}
	c := make([]float32, m*n)
	for j := 0; j < n; j++ {
		for i := 0; i < m; i++ {
			var sum float32
			for l := 0; l < k; l++ {
				sum += at(i, l) * bt(l, j)
			}
			c[j*m+i] = sum
		}
	}
	return c
}

func randomSlice(rng *rand.Rand, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(rng.IntN(21) - 10)
	}
	return out
}

func TestGemm(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 42))
	tests := []struct {
		name           string
		transA, transB bool
		m, n, k        int
	}{
		{"NN square", false, false, 3, 3, 3},
		{"NN rectangular", false, false, 2, 4, 3},
		{"TN", true, false, 3, 2, 4},
		{"NT", false, true, 4, 3, 2},
		{"TT", true, true, 2, 5, 3},
		{"outer product", false, false, 3, 4, 1},
		{"inner product", false, false, 1, 1, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lda := tt.m
			if tt.transA {
				lda = tt.k
			}
			ldb := tt.k
			if tt.transB {
				ldb = tt.n
			}
			a := randomSlice(rng, tt.m*tt.k)
			b := randomSlice(rng, tt.k*tt.n)
			c := make([]float32, tt.m*tt.n)

			Gemm(tt.transA, tt.transB, tt.m, tt.n, tt.k, a, lda, b, ldb, c, tt.m)

			want := naiveMul(tt.transA, tt.transB, tt.m, tt.n, tt.k, a, lda, b, ldb)
			assert.Equal(t, want, c)
		})
	}
}

func TestGemmKnownValues(t *testing.T) {
	// A = [1 2; 3 4] column-major, B = [5 6; 7 8]
	a := []float32{1, 3, 2, 4}
	b := []float32{5, 7, 6, 8}
	c := make([]float32, 4)
	Gemm(false, false, 2, 2, 2, a, 2, b, 2, c, 2)
	// [19 22; 43 50]
	assert.Equal(t, []float32{19, 43, 22, 50}, c)
}

func TestGemmZeroInnerDimension(t *testing.T) {
	c := []float32{1, 2, 3, 4}
	Gemm(false, false, 2, 2, 0, nil, 2, nil, 1, c, 2)
	assert.Equal(t, []float32{0, 0, 0, 0}, c)
}

func TestAsum(t *testing.T) {
	assert.Equal(t, float32(10), Asum([]float32{1, -2, 3, -4}))
	assert.Equal(t, float32(0), Asum(nil))
}

func TestLUInvert(t *testing.T) {
	// [4 7; 2 6] column-major, inverse is [0.6 -0.7; -0.2 0.4]
	a := []float32{4, 2, 7, 6}
	orig := append([]float32(nil), a...)

	lu, status := LUFactor(2, a, 2)
	require.Equal(t, StatusOK, status)
	inv := make([]float32, 4)
	require.Equal(t, StatusOK, lu.Invert(inv, 2))

	want := []float32{0.6, -0.2, -0.7, 0.4}
	for i := range want {
		assert.InDelta(t, want[i], inv[i], 1e-6)
	}
	assert.Equal(t, orig, a, "input must not be modified")
}

func TestLUInvertRandomIsInverse(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	const n = 6
	a := randomSlice(rng, n*n)
	for i := 0; i < n; i++ {
		a[i*n+i] += 50 // diagonally dominant, hence invertible
	}
	lu, status := LUFactor(n, a, n)
	require.Equal(t, StatusOK, status)
	inv := make([]float32, n*n)
	require.Equal(t, StatusOK, lu.Invert(inv, n))

	prod := make([]float32, n*n)
	Gemm(false, false, n, n, n, a, n, inv, n, prod, n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			want := float32(0)
			if i == j {
				want = 1
			}
			assert.InDelta(t, want, prod[j*n+i], 1e-4)
		}
	}
}

func TestLUFactorSingular(t *testing.T) {
	// [1 2; 2 4] has rank 1
	a := []float32{1, 2, 2, 4}
	_, status := LUFactor(2, a, 2)
	assert.Greater(t, status, 0)

	zero := make([]float32, 9)
	_, status = LUFactor(3, zero, 3)
	assert.Equal(t, 1, status)
}

func TestLUFactorEmpty(t *testing.T) {
	lu, status := LUFactor(0, nil, 0)
	require.Equal(t, StatusOK, status)
	assert.Equal(t, StatusOK, lu.Invert(nil, 0))
}

func TestLUFactorBadArgumentsReportInternal(t *testing.T) {
	// leading dimension smaller than n makes the copy go out of range
	_, status := LUFactor(3, []float32{1, 2}, 1)
	assert.Equal(t, StatusInternal, status)
}

func reconstruct(m, n int, u, s, vt []float32) []float32 {
	k := len(s)
	// us = U[:, :k]·diag(S)
	us := make([]float32, m*k)
	for j := 0; j < k; j++ {
		for i := 0; i < m; i++ {
			us[j*m+i] = u[j*m+i] * s[j]
		}
	}
	// VT[:k, :] rows, column-major with leading dimension n
	out := make([]float32, m*n)
	Gemm(false, false, m, n, k, us, m, vt, n, out, m)
	return out
}

func TestSVD(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	shapes := [][2]int{{3, 3}, {4, 2}, {2, 5}, {1, 4}, {5, 1}}
	for _, sh := range shapes {
		m, n := sh[0], sh[1]
		a := randomSlice(rng, m*n)
		orig := append([]float32(nil), a...)

		u, s, vt, status := SVD(m, n, a, m)
		require.Equal(t, StatusOK, status)
		require.Len(t, u, m*m)
		require.Len(t, vt, n*n)
		require.Len(t, s, min(m, n))
		assert.Equal(t, orig, a, "SVD must not modify its input")

		for i := 1; i < len(s); i++ {
			assert.GreaterOrEqual(t, s[i-1], s[i])
		}

		got := reconstruct(m, n, u, s, vt)
		for i := range a {
			assert.InDelta(t, float64(a[i]), float64(got[i]), 1e-3, "shape %dx%d index %d", m, n, i)
		}
	}
}

func TestSVDKnownSingularValues(t *testing.T) {
	// diag(3, 2) padded to 3x2
	a := []float32{3, 0, 0, 0, 2, 0}
	_, s, _, status := SVD(3, 2, a, 3)
	require.Equal(t, StatusOK, status)
	assert.InDelta(t, 3, s[0], 1e-6)
	assert.InDelta(t, 2, s[1], 1e-6)
}

func TestSVDEmpty(t *testing.T) {
	u, s, vt, status := SVD(2, 0, nil, 2)
	require.Equal(t, StatusOK, status)
	assert.Empty(t, s)
	assert.Equal(t, []float32{1, 0, 0, 1}, u)
	assert.Empty(t, vt)
	assert.False(t, math.IsNaN(float64(u[0])))
}
