package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/lalg/matrix"
	"github.com/YuminosukeSato/lalg/minimize"
	"github.com/YuminosukeSato/lalg/pkg/errors"
)

// objectives are the built-in test functions the solve command can minimize.
var objectives = map[string]minimize.Funcs{
	"sphere": {
		ValueFunc: func(x *matrix.Matrix) float64 {
			var f float64
			for v := range x.Values() {
				f += float64(v) * float64(v)
			}
			return f
		},
		GradientFunc: func(x *matrix.Matrix) *matrix.Matrix {
			return x.Scale(2)
		},
	},
	"rosenbrock": {
		ValueFunc: func(x *matrix.Matrix) float64 {
			d := x.RawData()
			var f float64
			for i := 0; i+1 < len(d); i++ {
				a, b := float64(d[i]), float64(d[i+1])
				f += 100*(b-a*a)*(b-a*a) + (1-a)*(1-a)
			}
			return f
		},
	},
	"booth": {
		ValueFunc: func(x *matrix.Matrix) float64 {
			d := x.RawData()
			a, b := float64(d[0]), float64(d[1])
			return (a+2*b-7)*(a+2*b-7) + (2*a+b-5)*(2*a+b-5)
		},
	},
}

func objectiveNames() []string {
	names := make([]string, 0, len(objectives))
	for name := range objectives {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newSolveCmd(a *app) *cobra.Command {
	var (
		function string
		method   string
		start    string
		maxIter  int
	)
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Minimize a built-in test function",
		Long: "Minimize one of the built-in test functions (" + strings.Join(objectiveNames(), ", ") + ") from a starting point.\n" +
			"Rosenbrock and booth use finite-difference gradients.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			function = strings.ToLower(function)
			obj, ok := objectives[function]
			if !ok {
				return errors.NewValidationError("function", "must be one of "+strings.Join(objectiveNames(), ", "), function)
			}
			m, err := minimize.ParseMethod(method)
			if err != nil {
				return err
			}
			x, err := parsePoint(start)
			if err != nil {
				return err
			}
			if function == "booth" && x.Len() != 2 {
				return errors.NewValidationError("start", "booth takes exactly two coordinates", start)
			}

			opts := []minimize.Option{minimize.WithSeed(a.cfg.Seed)}
			if maxIter > 0 {
				opts = append(opts, minimize.WithMaxIterations(maxIter))
			}
			task := minimize.SolveTask(x, obj, m, opts...)
			xmin, err := a.runner.Start(task).Wait(cmd.Context())
			if err != nil {
				return err
			}
			sum := task.Summary()
			a.print(cmd, "x", xmin)
			fmt.Fprintf(cmd.OutOrStdout(), "method=%s f=%.6g iterations=%d evaluations=%d status=%s\n",
				m, sum.F, sum.Iterations, sum.Evaluations, sum.Status)
			return nil
		},
	}
	cmd.Flags().StringVar(&function, "function", "sphere", "Objective: "+strings.Join(objectiveNames(), ", "))
	cmd.Flags().StringVar(&method, "method", minimize.BFGS.String(), "Minimizer")
	cmd.Flags().StringVar(&start, "start", "1,1", "Comma separated starting point")
	cmd.Flags().IntVar(&maxIter, "max-iter", 0, "Major iteration limit (0 = library default)")
	return cmd
}

// parsePoint parses "a,b,c" into a 1×n vector.
func parsePoint(s string) (*matrix.Matrix, error) {
	fields := strings.Split(s, ",")
	v := make([]float32, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		x, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, errors.NewValidationError("start", "not a number", f)
		}
		v = append(v, float32(x))
	}
	if len(v) == 0 {
		return nil, errors.NewValidationError("start", "needs at least one coordinate", s)
	}
	return matrix.New(1, len(v), v), nil
}
