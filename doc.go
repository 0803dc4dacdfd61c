// Package lalg is a dense float32 linear algebra toolkit for Go services
// and command line tools.
//
// Matrices are stored column-major in a single owned buffer, so element
// (r, c) of an m×n matrix lives at index c*m+r. Products, LU inversion and
// SVD run on gonum's BLAS and LAPACK implementations; everything else is
// plain Go with vek32 fast paths.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/lalg/async"
//	    "github.com/YuminosukeSato/lalg/matrix"
//	)
//
//	func main() {
//	    a := matrix.New(2, 2, []float32{4, 2, 7, 6}) // [4 7; 2 6]
//
//	    inv, err := a.Inverse()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Print(inv)
//
//	    r := async.NewRunner()
//	    defer r.Close()
//	    axes, err := r.Start(async.PCA(a, matrix.DefaultVarianceToKeep)).Wait(context.Background())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Print(axes)
//	}
//
// # Packages
//
//   - matrix: the Matrix type, broadcasting arithmetic, reductions, reshaping,
//     Inverse, PseudoInverse, SVD and PCA
//   - async: a bounded worker pool that resolves tasks through a Future or a
//     callback, exactly once
//   - minimize: BFGS, CG, Newton, Nelder-Mead, L-BFGS and CMA-ES over matrix
//     objectives
//   - stream: row-by-row ingestion and a CSV source
//   - report: scree plots of singular values
//   - core/kernel, core/buffer, core/parallel: numerical kernel, storage and
//     fan-out helpers
//   - pkg/errors, pkg/log, pkg/config: error taxonomy, logging and settings
//
// The lalg command in cmd/lalg exposes read, inv, pca and solve on CSV input.
//
// # Error Handling
//
// Failures are typed: ShapeError, SingularMatrixError, NumericalFailure,
// IndexOutOfRange and ValidationError, all matched with errors.As.
// Non-fatal conditions such as a minimizer stopping before convergence are
// reported as warnings through errors.Warn.
package lalg
