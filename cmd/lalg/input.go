package main

import (
	"context"
	"io"
	"os"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/lalg/matrix"
	"github.com/YuminosukeSato/lalg/pkg/errors"
	"github.com/YuminosukeSato/lalg/stream"
)

// csvFlags are the input options shared by commands that read a matrix.
type csvFlags struct {
	comma  string
	header bool
	strict bool
}

func (f *csvFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.comma, "comma", ",", "Field delimiter")
	cmd.Flags().BoolVar(&f.header, "header", false, "Skip the first record")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Reject rows shorter than the first")
}

func (f *csvFlags) options() ([]stream.CSVOption, []stream.Option, error) {
	r, size := utf8.DecodeRuneInString(f.comma)
	if size == 0 || size != len(f.comma) {
		return nil, nil, errors.NewValidationError("comma", "must be a single character", f.comma)
	}
	csvOpts := []stream.CSVOption{stream.WithComma(r)}
	if f.header {
		csvOpts = append(csvOpts, stream.SkipHeader())
	}
	var ingestOpts []stream.Option
	if f.strict {
		ingestOpts = append(ingestOpts, stream.WithStrictRows())
	}
	return csvOpts, ingestOpts, nil
}

// openInput returns the named file, or stdin for "" and "-".
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	return f, nil
}

// readMatrix streams CSV rows from path into a matrix.
func readMatrix(cmd *cobra.Command, path string, flags *csvFlags) (*matrix.Matrix, error) {
	csvOpts, ingestOpts, err := flags.options()
	if err != nil {
		return nil, err
	}
	in, err := openInput(cmd, path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	rows, errs := stream.CSVRows(ctx, in, csvOpts...)
	m, err := stream.Read(ctx, rows, ingestOpts...).Wait(ctx)
	if err != nil {
		return nil, err
	}
	if err := <-errs; err != nil {
		return nil, err
	}
	return m, nil
}

func pathArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
