package matrix

import (
	"github.com/YuminosukeSato/lalg/core/kernel"
	"github.com/YuminosukeSato/lalg/pkg/errors"
)

// DefaultVarianceToKeep is the PCA target used when callers have no preference.
const DefaultVarianceToKeep = 0.97

// CheckSquare returns a ShapeError unless m is square.
func (m *Matrix) CheckSquare(op string) error {
	if m.Rows() != m.Cols() {
		return errors.NewUnaryShapeError(op, m.Rows(), m.Cols(), "should be a square matrix")
	}
	return nil
}

// Inverse returns m⁻¹.
//
// It fails with a ShapeError when m is not square, a SingularMatrixError
// when LU factorization finds a zero pivot, and a NumericalFailure when the
// kernel reports an internal error or the result is not finite.
func (m *Matrix) Inverse() (*Matrix, error) {
	if err := m.CheckSquare("Inverse"); err != nil {
		return nil, err
	}
	out := Zeros(m.Rows(), m.Cols())
	if err := m.invertInto("Inverse", out); err != nil {
		return nil, err
	}
	return out, nil
}

// InverseInto writes m⁻¹ into dst, which must have m's shape.
func (m *Matrix) InverseInto(dst *Matrix) error {
	if err := m.CheckSquare("Inverse"); err != nil {
		return err
	}
	if dst.Rows() != m.Rows() || dst.Cols() != m.Cols() {
		return errors.NewShapeError("InverseInto", dst.Rows(), dst.Cols(), m.Rows(), m.Cols())
	}
	return m.invertInto("Inverse", dst)
}

func (m *Matrix) invertInto(op string, dst *Matrix) error {
	n := m.Rows()
	lu, status := kernel.LUFactor(n, m.buf.Live(), max(1, n))
	switch {
	case status > 0:
		return errors.NewSingularMatrixError(op, status)
	case status < 0:
		return errors.NewNumericalFailure(op, "getrf", status, "")
	}
	if status := lu.Invert(dst.buf.Live(), max(1, n)); status != 0 {
		return errors.NewNumericalFailure(op, "getri", status, "")
	}
	return errors.CheckFinite(op, "getri", dst.buf.Live())
}

// PseudoInverseShape returns the shape of m's pseudo-inverse, n×m.
func (m *Matrix) PseudoInverseShape() (rows, cols int) {
	return m.Cols(), m.Rows()
}

// PseudoInverse returns the Moore-Penrose pseudo-inverse of a full-rank m.
// Tall matrices use inv(AᵀA)·Aᵀ and wide or square ones Aᵀ·inv(AAᵀ), so the
// inverted covariance is always min(m,n)×min(m,n). A rank-deficient input
// yields a SingularMatrixError from the covariance inversion.
func (m *Matrix) PseudoInverse() (*Matrix, error) {
	out := Zeros(m.PseudoInverseShape())
	if err := m.PseudoInverseInto(out); err != nil {
		return nil, err
	}
	return out, nil
}

// PseudoInverseInto writes the pseudo-inverse into dst, which must be n×m.
func (m *Matrix) PseudoInverseInto(dst *Matrix) error {
	rows, cols := m.PseudoInverseShape()
	if dst.Rows() != rows || dst.Cols() != cols {
		return errors.NewShapeError("PseudoInverseInto", dst.Rows(), dst.Cols(), rows, cols)
	}
	at := m.Transpose()

	var (
		left, right *Matrix
		cov         *Matrix
		err         error
	)
	if m.Rows() > m.Cols() {
		cov, err = at.Mul(m)
	} else {
		cov, err = m.Mul(at)
	}
	if err != nil {
		return err
	}
	inv := Zeros(cov.Rows(), cov.Cols())
	if err := cov.invertInto("PseudoInverse", inv); err != nil {
		return err
	}
	if m.Rows() > m.Cols() {
		left, right = inv, at
	} else {
		left, right = at, inv
	}
	return left.MulInto(dst, right)
}

// SVDResult holds A = U·diag(S)·VT. U is m×m, S is a min(m,n)×1 column of
// non-increasing singular values and VT is n×n.
type SVDResult struct {
	U  *Matrix
	S  *Matrix
	VT *Matrix
}

// Reconstruct returns U·diag(S)·VT.
func (r SVDResult) Reconstruct() (*Matrix, error) {
	m, n := r.U.Rows(), r.VT.Cols()
	sigma := DiagN(r.S.RawData(), m)
	if sigma.Cols() < n {
		var err error
		if sigma, err = sigma.AppendColumns(Zeros(m, n-sigma.Cols())); err != nil {
			return nil, err
		}
	}
	us, err := r.U.Mul(sigma)
	if err != nil {
		return nil, err
	}
	return us.Mul(r.VT)
}

// SVD computes the full singular value decomposition of m. m is not modified.
func (m *Matrix) SVD() (SVDResult, error) {
	rows, cols := m.Rows(), m.Cols()
	u, s, vt, status := kernel.SVD(rows, cols, m.buf.Live(), max(1, rows))
	if status != 0 {
		reason := "did not converge"
		if status < 0 {
			reason = "internal error"
		}
		return SVDResult{}, errors.NewNumericalFailure("SVD", "gesvd", status, reason)
	}
	if err := errors.CheckFinite("SVD", "gesvd", s); err != nil {
		return SVDResult{}, err
	}
	return SVDResult{
		U:  New(rows, rows, u),
		S:  New(len(s), 1, s),
		VT: New(cols, cols, vt),
	}, nil
}

// ExplainedVariance returns each singular value's share of the total
// singular-value mass, in decreasing order. This is the quantity PCA
// accumulates when choosing how many components to keep.
func (r SVDResult) ExplainedVariance() []float32 {
	s := r.S.RawData()
	out := make([]float32, len(s))
	total := sum32(s)
	for i, v := range s {
		out[i] = errors.SafeDivide(v, total)
	}
	return out
}

// ComponentsFor returns the smallest k whose cumulative explained variance
// reaches varianceToKeep, or min(m,n) if it is never reached.
func (r SVDResult) ComponentsFor(varianceToKeep float32) int {
	ratios := r.ExplainedVariance()
	var cum float32
	for i, v := range ratios {
		cum += v
		if cum >= varianceToKeep {
			return i + 1
		}
	}
	return len(ratios)
}

// CheckVariance validates a PCA variance target.
func CheckVariance(varianceToKeep float32) error {
	if !(varianceToKeep > 0 && varianceToKeep <= 1) {
		return errors.NewValidationError("varianceToKeep", "must be in (0, 1]", varianceToKeep)
	}
	return nil
}

// PCA returns the n×k projection whose columns are the top k right singular
// vectors of m, with k chosen by ComponentsFor. m should be mean-centered by
// the caller; this is not checked. m is not modified.
func (m *Matrix) PCA(varianceToKeep float32) (*Matrix, error) {
	if err := CheckVariance(varianceToKeep); err != nil {
		return nil, err
	}
	res, err := m.SVD()
	if err != nil {
		return nil, err
	}
	return res.Components(varianceToKeep)
}

// Components returns the PCA projection for varianceToKeep from an existing
// decomposition, so callers holding an SVDResult need not factor again.
func (r SVDResult) Components(varianceToKeep float32) (*Matrix, error) {
	if err := CheckVariance(varianceToKeep); err != nil {
		return nil, err
	}
	k := r.ComponentsFor(varianceToKeep)
	n := r.VT.Cols()
	out := Zeros(n, k)
	vt, dst := r.VT.RawData(), out.buf.Live()
	// Column j of the result is row j of VT.
	for j := 0; j < k; j++ {
		for i := 0; i < n; i++ {
			dst[j*n+i] = vt[i*n+j]
		}
	}
	return out, nil
}
