package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/lalg/async"
	"github.com/YuminosukeSato/lalg/matrix"
	"github.com/YuminosukeSato/lalg/pkg/config"
)

// app carries the state shared by every subcommand once the root command
// has loaded the configuration.
type app struct {
	configPath string
	logLevel   string
	workers    int

	cfg    *config.Config
	runner *async.Runner
}

// newRootCmd returns the command tree and a function that releases the
// worker pool once execution has finished.
func newRootCmd() (*cobra.Command, func() error) {
	a := &app{}
	root := &cobra.Command{
		Use:   "lalg",
		Short: "lalg - dense float32 linear algebra toolkit",
		Long: `lalg reads numeric CSV data into column-major float32 matrices and
runs decompositions and minimizers on them through a bounded worker pool.

Configuration is read from an optional YAML file, a .env file and LALG_*
environment variables, in that order. Flags override all of them.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	root.PersistentFlags().IntVar(&a.workers, "workers", 0, "Worker goroutines (0 = use config)")

	root.AddCommand(
		newVersionCmd(),
		newInfoCmd(a),
		newReadCmd(a),
		newPCACmd(a),
		newInvCmd(a),
		newSolveCmd(a),
	)
	return root, a.teardown
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.workers > 0 {
		cfg.Workers = a.workers
	}
	if err := cfg.ApplyTo(cmd.ErrOrStderr()); err != nil {
		return err
	}
	a.cfg = cfg
	a.runner = async.NewRunner(cfg.RunnerOptions()...)
	return nil
}

func (a *app) teardown() error {
	if a.runner == nil {
		return nil
	}
	return a.runner.Close()
}

// print writes m using the configured preview extent.
func (a *app) print(cmd *cobra.Command, name string, m *matrix.Matrix) {
	m.SetName(name)
	m.SetMaxPrintExtent(a.cfg.MaxPrintExtent)
	fmt.Fprint(cmd.OutOrStdout(), m.String())
}
