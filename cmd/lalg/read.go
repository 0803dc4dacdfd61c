package main

import (
	"github.com/spf13/cobra"
)

func newReadCmd(a *app) *cobra.Command {
	var flags csvFlags
	cmd := &cobra.Command{
		Use:   "read [file]",
		Short: "Read a CSV file into a matrix and print it",
		Long:  "Read a CSV file (or stdin when file is omitted or -) row by row into a matrix and print a preview.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readMatrix(cmd, pathArg(args), &flags)
			if err != nil {
				return err
			}
			a.print(cmd, "", m)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
