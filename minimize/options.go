package minimize

import (
	"github.com/YuminosukeSato/lalg/pkg/log"
)

// DefaultSeed seeds the sampling of stochastic methods.
const DefaultSeed = 42

type options struct {
	maxIterations     int
	maxEvaluations    int
	gradientThreshold float64
	seed              uint64
	logger            log.Logger
}

// Option configures Solve.
type Option func(*options)

// WithMaxIterations limits the number of major iterations. Zero means no limit.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithMaxEvaluations limits the number of objective evaluations. Zero means no limit.
func WithMaxEvaluations(n int) Option {
	return func(o *options) {
		o.maxEvaluations = n
	}
}

// WithGradientThreshold stops gradient-based methods once the infinity norm
// of the gradient falls below t.
func WithGradientThreshold(t float64) Option {
	return func(o *options) {
		o.gradientThreshold = t
	}
}

// WithSeed seeds stochastic methods such as CMAES.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithLogger sets the logger that receives the run summary.
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func newOptions(opts []Option) options {
	o := options{seed: DefaultSeed}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.GetLoggerWithName("minimize")
	}
	return o
}
