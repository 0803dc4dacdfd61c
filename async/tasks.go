package async

import (
	"github.com/YuminosukeSato/lalg/matrix"
	"github.com/YuminosukeSato/lalg/pkg/log"
)

type multiplyTask struct {
	a   *matrix.Matrix
	b   matrix.Operand
	out *matrix.Matrix
}

// Multiply returns a task computing a·b for a matrix operand or a·s for a scalar.
func Multiply(a *matrix.Matrix, b matrix.Operand) Task {
	return &multiplyTask{a: a, b: b}
}

func (t *multiplyTask) Name() string { return log.OperationMul }

func (t *multiplyTask) Prepare() error {
	if t.b.IsScalar() {
		t.out = matrix.Zeros(t.a.Rows(), t.a.Cols())
		return nil
	}
	other := t.b.Matrix()
	if err := t.a.CheckMul(other); err != nil {
		return err
	}
	t.out = matrix.Zeros(t.a.Rows(), other.Cols())
	return nil
}

func (t *multiplyTask) Execute() error {
	if t.b.IsScalar() {
		copy(t.out.RawData(), t.a.RawData())
		t.out.ScaleInPlace(t.b.ScalarValue())
		return nil
	}
	return t.a.MulInto(t.out, t.b.Matrix())
}

func (t *multiplyTask) Result() *matrix.Matrix { return t.out }

type inverseTask struct {
	a   *matrix.Matrix
	out *matrix.Matrix
}

// Inverse returns a task computing a⁻¹.
func Inverse(a *matrix.Matrix) Task {
	return &inverseTask{a: a}
}

func (t *inverseTask) Name() string { return log.OperationInverse }

func (t *inverseTask) Prepare() error {
	if err := t.a.CheckSquare("Inverse"); err != nil {
		return err
	}
	t.out = matrix.Zeros(t.a.Rows(), t.a.Cols())
	return nil
}

func (t *inverseTask) Execute() error { return t.a.InverseInto(t.out) }

func (t *inverseTask) Result() *matrix.Matrix { return t.out }

type pseudoInverseTask struct {
	a   *matrix.Matrix
	out *matrix.Matrix
}

// PseudoInverse returns a task computing the pseudo-inverse of a.
func PseudoInverse(a *matrix.Matrix) Task {
	return &pseudoInverseTask{a: a}
}

func (t *pseudoInverseTask) Name() string { return log.OperationPseudoInverse }

func (t *pseudoInverseTask) Prepare() error {
	t.out = matrix.Zeros(t.a.PseudoInverseShape())
	return nil
}

func (t *pseudoInverseTask) Execute() error { return t.a.PseudoInverseInto(t.out) }

func (t *pseudoInverseTask) Result() *matrix.Matrix { return t.out }

// PCATask computes principal components and keeps the decomposition they
// were derived from.
type PCATask struct {
	a        *matrix.Matrix
	variance float32
	svd      matrix.SVDResult
	out      *matrix.Matrix
}

// PCA returns a task computing a's principal components. The component
// count depends on the singular values, so the result is allocated by
// Execute rather than Prepare.
func PCA(a *matrix.Matrix, varianceToKeep float32) *PCATask {
	return &PCATask{a: a, variance: varianceToKeep}
}

func (t *PCATask) Name() string { return log.OperationPCA }

func (t *PCATask) Prepare() error {
	return matrix.CheckVariance(t.variance)
}

func (t *PCATask) Execute() error {
	res, err := t.a.SVD()
	if err != nil {
		return err
	}
	out, err := res.Components(t.variance)
	if err != nil {
		return err
	}
	t.svd, t.out = res, out
	return nil
}

func (t *PCATask) Result() *matrix.Matrix { return t.out }

// Decomposition returns the SVD the components were taken from. It is
// zero until the task has completed successfully.
func (t *PCATask) Decomposition() matrix.SVDResult { return t.svd }
