package errors

import (
	"math"

	"github.com/chewxy/math32"
)

// CheckFinite checks if float32 values contain NaN or Inf
// and returns a NumericalFailure naming the first offending position.
func CheckFinite(operation, routine string, values []float32) error {
	for i, v := range values {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return NewNumericalFailure(operation, routine, -(i + 1), "non-finite value in result")
		}
	}
	return nil
}

// CheckScalar checks a single scalar value for numerical instability.
func CheckScalar(operation, routine string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NewNumericalFailure(operation, routine, -1, "non-finite objective value")
	}
	return nil
}

// CheckMatrix checks all values in a matrix for numerical instability.
func CheckMatrix(operation string, matrix interface {
	Dims() (int, int)
	At(int, int) float64
}) error {
	rows, cols := matrix.Dims()
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			v := matrix.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return NewNumericalFailure(operation, "check", -(j*rows + i + 1), "non-finite value in matrix")
			}
		}
	}
	return nil
}

// SafeDivide performs division with protection against division by zero.
// Returns 0 if denominator is zero or close to zero.
func SafeDivide(numerator, denominator float32) float32 {
	if math32.Abs(denominator) < 1e-12 {
		return 0
	}
	return numerator / denominator
}
