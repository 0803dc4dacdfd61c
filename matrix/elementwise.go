package matrix

import (
	"github.com/chewxy/math32"
	"github.com/viterin/vek/vek32"
)

// mapped returns a copy of m with f applied to every element.
func (m *Matrix) mapped(f func(float32) float32) *Matrix {
	out := m.Dup()
	data := out.buf.Live()
	for i, v := range data {
		data[i] = f(v)
	}
	return out
}

// Neg returns -m.
func (m *Matrix) Neg() *Matrix {
	out := m.Dup()
	if data := out.buf.Live(); len(data) > 0 {
		vek32.Neg_Inplace(data)
	}
	return out
}

// Abs returns |m| elementwise.
func (m *Matrix) Abs() *Matrix {
	out := m.Dup()
	if data := out.buf.Live(); len(data) > 0 {
		vek32.Abs_Inplace(data)
	}
	return out
}

// Sqrt returns the elementwise square root. Negative inputs yield NaN.
func (m *Matrix) Sqrt() *Matrix {
	return m.mapped(math32.Sqrt)
}

// Log returns the elementwise natural logarithm. Zero yields -Inf and negative inputs NaN.
func (m *Matrix) Log() *Matrix {
	return m.mapped(math32.Log)
}

// DefaultFindEpsilon is the tolerance FindEqual uses unless WithEpsilon is given.
const DefaultFindEpsilon = 1e-6

// FindOption configures the Find family.
type FindOption func(*findConfig)

type findConfig struct {
	epsilon     float32
	replacement float32
	replace     bool
}

// WithEpsilon sets the match tolerance of FindEqual.
func WithEpsilon(eps float32) FindOption {
	return func(c *findConfig) {
		c.epsilon = eps
	}
}

// WithReplacement writes v instead of the original element where the predicate holds.
func WithReplacement(v float32) FindOption {
	return func(c *findConfig) {
		c.replacement = v
		c.replace = true
	}
}

func (m *Matrix) find(pred func(x float32) bool, cfg findConfig) *Matrix {
	return m.mapped(func(x float32) float32 {
		if !pred(x) {
			return 0
		}
		if cfg.replace {
			return cfg.replacement
		}
		return x
	})
}

func newFindConfig(opts []FindOption) findConfig {
	cfg := findConfig{epsilon: DefaultFindEpsilon}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// FindEqual keeps elements within epsilon of target and zeroes the rest.
func (m *Matrix) FindEqual(target float32, opts ...FindOption) *Matrix {
	cfg := newFindConfig(opts)
	return m.find(func(x float32) bool { return math32.Abs(x-target) < cfg.epsilon }, cfg)
}

// FindGreater keeps elements strictly greater than threshold and zeroes the rest.
func (m *Matrix) FindGreater(threshold float32, opts ...FindOption) *Matrix {
	return m.find(func(x float32) bool { return x > threshold }, newFindConfig(opts))
}

// FindLessOrEqual keeps elements less than or equal to threshold and zeroes the rest.
func (m *Matrix) FindLessOrEqual(threshold float32, opts ...FindOption) *Matrix {
	return m.find(func(x float32) bool { return x <= threshold }, newFindConfig(opts))
}
