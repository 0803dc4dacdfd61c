package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/lalg/minimize"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lalg v%s (%s)\n", version, commit)
		},
	}
}

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			methods := make([]string, 0, len(minimize.Methods()))
			for _, m := range minimize.Methods() {
				methods = append(methods, m.String())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version:            %s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "go:                 %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			fmt.Fprintf(cmd.OutOrStdout(), "workers:            %d\n", a.runner.Workers())
			fmt.Fprintf(cmd.OutOrStdout(), "queue size:         %d\n", a.cfg.QueueSize)
			fmt.Fprintf(cmd.OutOrStdout(), "parallel threshold: %d\n", a.cfg.ParallelThreshold)
			fmt.Fprintf(cmd.OutOrStdout(), "max print extent:   %d\n", a.cfg.MaxPrintExtent)
			fmt.Fprintf(cmd.OutOrStdout(), "seed:               %d\n", a.cfg.Seed)
			fmt.Fprintf(cmd.OutOrStdout(), "log level:          %s\n", a.cfg.LogLevel)
			fmt.Fprintf(cmd.OutOrStdout(), "minimizers:         %s\n", strings.Join(methods, ", "))
		},
	}
}
