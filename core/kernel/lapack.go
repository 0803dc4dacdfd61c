package kernel

import (
	"gonum.org/v1/gonum/lapack"
	"gonum.org/v1/gonum/lapack/gonum"
)

var impl gonum.Implementation

// Status values follow LAPACK's info convention: 0 is success, a positive
// value reports a numerical condition (a zero pivot or a non-converged SVD)
// and a negative value reports an internal failure, here a panic raised by
// the LAPACK implementation on malformed arguments.
const (
	StatusOK       = 0
	StatusInternal = -1
)

// guard converts a panic inside a LAPACK call into StatusInternal.
func guard(status *int) {
	if r := recover(); r != nil {
		*status = StatusInternal
	}
}

// LU holds a factorization produced by LUFactor. Factors are kept in float64.
type LU struct {
	n    int
	a    []float64
	ipiv []int
}

// LUFactor computes the LU factorization with partial pivoting of the n×n
// column-major matrix a. The input is not modified. On a singular matrix the
// status is the 1-based position of the first exactly zero diagonal element of U.
func LUFactor(n int, a []float32, lda int) (lu *LU, status int) {
	defer guard(&status)

	// Row-major view of the column-major input is Aᵀ; factoring Aᵀ preserves singularity.
	f := &LU{n: n, a: make([]float64, n*n), ipiv: make([]int, n)}
	for j := 0; j < n; j++ {
		col := a[j*lda : j*lda+n]
		for i, v := range col {
			f.a[j*n+i] = float64(v)
		}
	}
	if n == 0 {
		return f, StatusOK
	}
	if !impl.Dgetrf(n, n, f.a, n, f.ipiv) {
		for i := 0; i < n; i++ {
			if f.a[i*n+i] == 0 {
				return f, i + 1
			}
		}
		return f, 1
	}
	return f, StatusOK
}

// Invert writes A⁻¹ into dst (column-major, leading dimension ldd) using the
// factorization. A positive status means the factors are singular.
func (f *LU) Invert(dst []float32, ldd int) (status int) {
	defer guard(&status)

	n := f.n
	if n == 0 {
		return StatusOK
	}
	inv := make([]float64, len(f.a))
	copy(inv, f.a)

	query := make([]float64, 1)
	impl.Dgetri(n, inv, n, f.ipiv, query, -1)
	lwork := max(n, int(query[0]))
	work := make([]float64, lwork)
	if !impl.Dgetri(n, inv, n, f.ipiv, work, lwork) {
		for i := 0; i < n; i++ {
			if f.a[i*n+i] == 0 {
				return i + 1
			}
		}
		return 1
	}

	// inv holds (Aᵀ)⁻¹ row-major, which is A⁻¹ column-major.
	for j := 0; j < n; j++ {
		col := dst[j*ldd : j*ldd+n]
		for i := range col {
			col[i] = float32(inv[j*n+i])
		}
	}
	return StatusOK
}

// SVD computes the full singular value decomposition A = U·diag(S)·VT of the
// m×n column-major matrix a. a is never modified. U is m×m, VT is n×n (both
// column-major, leading dimensions m and n) and S holds min(m, n) values in
// non-increasing order. A positive status means the iteration did not converge.
func SVD(m, n int, a []float32, lda int) (u, s, vt []float32, status int) {
	u = make([]float32, m*m)
	s = make([]float32, min(m, n))
	vt = make([]float32, n*n)
	if m == 0 || n == 0 {
		identity(u, m)
		identity(vt, n)
		return u, s, vt, StatusOK
	}

	defer guard(&status)

	// Decompose Aᵀ (n×m row-major) = U'·S·V'ᵀ. Then A = V'·S·U'ᵀ, and the
	// row-major storage of V'ᵀ and U' is exactly U and VT column-major.
	at := make([]float64, m*n)
	for j := 0; j < n; j++ {
		for i := 0; i < m; i++ {
			at[j*m+i] = float64(a[j*lda+i])
		}
	}
	sv := make([]float64, min(m, n))
	up := make([]float64, n*n)
	vtp := make([]float64, m*m)

	query := make([]float64, 1)
	impl.Dgesvd(lapack.SVDAll, lapack.SVDAll, n, m, at, m, sv, up, n, vtp, m, query, -1)
	lwork := int(query[0])
	work := make([]float64, lwork)
	if !impl.Dgesvd(lapack.SVDAll, lapack.SVDAll, n, m, at, m, sv, up, n, vtp, m, work, lwork) {
		return u, s, vt, 1
	}

	toFloat32(u, vtp)
	toFloat32(s, sv)
	toFloat32(vt, up)
	return u, s, vt, StatusOK
}

func toFloat32(dst []float32, src []float64) {
	for i, v := range src {
		dst[i] = float32(v)
	}
}

func identity(dst []float32, n int) {
	for i := 0; i < n; i++ {
		dst[i*n+i] = 1
	}
}
