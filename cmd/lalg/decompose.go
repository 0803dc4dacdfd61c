package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/lalg/async"
	"github.com/YuminosukeSato/lalg/matrix"
	"github.com/YuminosukeSato/lalg/pkg/errors"
	"github.com/YuminosukeSato/lalg/report"
)

func newInvCmd(a *app) *cobra.Command {
	var (
		flags csvFlags
		pinv  bool
	)
	cmd := &cobra.Command{
		Use:   "inv [file]",
		Short: "Invert a square matrix, or pseudo-invert with --pinv",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readMatrix(cmd, pathArg(args), &flags)
			if err != nil {
				return err
			}
			task, name := async.Inverse(m), "inverse"
			if pinv {
				task, name = async.PseudoInverse(m), "pinv"
			}

			type outcome struct {
				m   *matrix.Matrix
				err error
			}
			done := make(chan outcome, 1)
			a.runner.StartWithCallback(task, func(err error, result *matrix.Matrix) {
				done <- outcome{result, err}
			})
			res := <-done
			if res.err != nil {
				return res.err
			}
			a.print(cmd, name, res.m)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&pinv, "pinv", false, "Compute the Moore-Penrose pseudo-inverse")
	return cmd
}

func newPCACmd(a *app) *cobra.Command {
	var (
		flags    csvFlags
		variance float32
		center   bool
		scree    string
	)
	cmd := &cobra.Command{
		Use:   "pca [file]",
		Short: "Print the principal axes keeping a share of the variance",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readMatrix(cmd, pathArg(args), &flags)
			if err != nil {
				return err
			}
			if center {
				if m, err = centerColumns(m); err != nil {
					return err
				}
			}

			task := async.PCA(m, variance)
			axes, err := a.runner.Start(task).Wait(cmd.Context())
			if err != nil {
				return err
			}
			a.print(cmd, "pca", axes)

			if scree != "" {
				if err := report.SaveScree(scree, task.Decomposition(), report.WithThreshold(variance)); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "scree plot written to %s\n", scree)
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().Float32Var(&variance, "variance", matrix.DefaultVarianceToKeep, "Share of variance to keep, in (0, 1]")
	cmd.Flags().BoolVar(&center, "center", false, "Subtract column means before decomposing")
	cmd.Flags().StringVar(&scree, "scree", "", "Write a scree plot to this file (png, svg, pdf)")
	return cmd
}

// centerColumns subtracts each column's mean from m.
func centerColumns(m *matrix.Matrix) (*matrix.Matrix, error) {
	if m.Len() == 0 {
		return nil, errors.NewValidationError("data", "cannot center an empty matrix", 0)
	}
	mean, err := m.Mean(matrix.AxisColumns)
	if err != nil {
		return nil, err
	}
	if mean.IsScalar() {
		if m.Rows() == 1 {
			return matrix.Zeros(1, m.Cols()), nil
		}
		return m.SubScalar(mean.Scalar), nil
	}
	return m.Sub(mean.Vector)
}
