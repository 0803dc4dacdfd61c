// Package kernel provides the dense numerical routines behind matrix
// operations: general matrix multiply, absolute sum, LU factorization and
// inversion, and singular value decomposition.
//
// All slices are column-major with an explicit leading dimension, the
// layout used by reference BLAS and LAPACK. Gonum's implementations are
// row-major; a column-major buffer read row-major is the transpose of the
// same matrix, so the routines below reinterpret memory instead of copying.
package kernel

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
)

// Gemm computes C = op(A) * op(B) where op(X) is X or Xᵀ as selected by
// transA and transB. op(A) is m×k, op(B) is k×n and C is m×n. Existing
// contents of C are overwritten.
func Gemm(transA, transB bool, m, n, k int, a []float32, lda int, b []float32, ldb int, c []float32, ldc int) {
	if m == 0 || n == 0 {
		return
	}
	if k == 0 {
		for j := 0; j < n; j++ {
			clear(c[j*ldc : j*ldc+m])
		}
		return
	}

	// Cᵀ = op(B)ᵀ * op(A)ᵀ, evaluated row-major over the same storage.
	tA, viewA := blas.NoTrans, blas32.General{Rows: k, Cols: m, Stride: lda, Data: a}
	if transA {
		tA, viewA = blas.Trans, blas32.General{Rows: m, Cols: k, Stride: lda, Data: a}
	}
	tB, viewB := blas.NoTrans, blas32.General{Rows: n, Cols: k, Stride: ldb, Data: b}
	if transB {
		tB, viewB = blas.Trans, blas32.General{Rows: k, Cols: n, Stride: ldb, Data: b}
	}
	viewC := blas32.General{Rows: n, Cols: m, Stride: ldc, Data: c}

	blas32.Gemm(tB, tA, 1, viewB, viewA, 0, viewC)
}

// Asum returns the sum of absolute values of x.
func Asum(x []float32) float32 {
	if len(x) == 0 {
		return 0
	}
	return blas32.Asum(blas32.Vector{N: len(x), Inc: 1, Data: x})
}
