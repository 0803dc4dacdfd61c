package minimize

import (
	"math/rand/v2"
	"strings"

	"gonum.org/v1/gonum/optimize"

	"github.com/YuminosukeSato/lalg/pkg/errors"
)

// Method selects the minimization algorithm.
type Method int

const (
	// BFGS is the quasi-Newton BFGS method. It is the default.
	BFGS Method = iota
	// CGD is nonlinear conjugate gradient descent.
	CGD
	// Newton is the modified Newton method. Objectives that do not implement
	// Hessianer get a finite-difference Hessian.
	Newton
	// NelderMead is the derivative-free simplex method.
	NelderMead
	// LBFGS is limited-memory BFGS.
	LBFGS
	// CMAES is the covariance matrix adaptation evolution strategy.
	CMAES
)

var methodNames = [...]string{
	BFGS:       "BFGS",
	CGD:        "CGD",
	Newton:     "NEWTON",
	NelderMead: "NELDERMEAD",
	LBFGS:      "LBFGS",
	CMAES:      "CMAES",
}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return "UNKNOWN"
	}
	return methodNames[m]
}

// Methods returns every supported method in declaration order.
func Methods() []Method {
	return []Method{BFGS, CGD, Newton, NelderMead, LBFGS, CMAES}
}

// ParseMethod maps a case-insensitive method name to a Method. The empty
// string selects BFGS.
func ParseMethod(name string) (Method, error) {
	if name == "" {
		return BFGS, nil
	}
	for i, n := range methodNames {
		if strings.EqualFold(n, name) {
			return Method(i), nil
		}
	}
	return 0, errors.NewValidationError("method", "must be one of "+strings.Join(methodNames[:], ", "), name)
}

// usesHessian reports whether the method evaluates the Hessian.
func (m Method) usesHessian() bool { return m == Newton }

func (m Method) optimizer(seed uint64) (optimize.Method, error) {
	switch m {
	case BFGS:
		return &optimize.BFGS{}, nil
	case CGD:
		return &optimize.CG{}, nil
	case Newton:
		return &optimize.Newton{}, nil
	case NelderMead:
		return &optimize.NelderMead{}, nil
	case LBFGS:
		return &optimize.LBFGS{}, nil
	case CMAES:
		return &optimize.CmaEsChol{Src: rand.NewPCG(seed, seed)}, nil
	default:
		return nil, errors.NewValidationError("method", "unknown method", int(m))
	}
}
