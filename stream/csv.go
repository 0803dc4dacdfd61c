package stream

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/lalg/pkg/errors"
)

type csvOptions struct {
	comma      rune
	skipHeader bool
}

// CSVOption configures CSVRows.
type CSVOption func(*csvOptions)

// WithComma sets the field delimiter. The default is ','.
func WithComma(r rune) CSVOption {
	return func(o *csvOptions) {
		o.comma = r
	}
}

// SkipHeader discards the first record.
func SkipHeader() CSVOption {
	return func(o *csvOptions) {
		o.skipHeader = true
	}
}

// CSVRows parses r as CSV on a new goroutine and sends each record as a
// row of numbers. Records may have differing lengths. Both channels are
// closed when r is exhausted, ctx is done, or a field fails to parse; in
// the last two cases one error is sent first.
func CSVRows(ctx context.Context, r io.Reader, opts ...CSVOption) (<-chan []float64, <-chan error) {
	o := csvOptions{comma: ','}
	for _, opt := range opts {
		opt(&o)
	}

	rows := make(chan []float64)
	errs := make(chan error, 1)
	go func() {
		defer close(errs)
		defer close(rows)

		cr := csv.NewReader(r)
		cr.Comma = o.comma
		cr.FieldsPerRecord = -1
		cr.TrimLeadingSpace = true
		cr.ReuseRecord = true

		for line := 1; ; line++ {
			record, err := cr.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				errs <- errors.Wrapf(err, "csv line %d", line)
				return
			}
			if line == 1 && o.skipHeader {
				continue
			}
			row, err := parseRecord(record)
			if err != nil {
				errs <- errors.Wrapf(err, "csv line %d", line)
				return
			}
			select {
			case rows <- row:
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
		}
	}()
	return rows, errs
}

func parseRecord(record []string) ([]float64, error) {
	row := make([]float64, len(record))
	for i, field := range record {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, errors.NewValidationError("field", "must be a number", field)
		}
		row[i] = v
	}
	return row, nil
}
