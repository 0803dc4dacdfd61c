// Package stream builds matrices from row-oriented sources whose length is
// not known in advance, such as CSV files.
//
// Each pushed row is an observation. Rows are stored as columns of a
// growing buffer and the buffer is transposed once when the stream ends.
package stream

import (
	"github.com/YuminosukeSato/lalg/core/buffer"
	"github.com/YuminosukeSato/lalg/matrix"
	"github.com/YuminosukeSato/lalg/pkg/errors"
	"github.com/YuminosukeSato/lalg/pkg/log"
)

// ErrEnded is returned by Push and End once End has been called.
var ErrEnded = errors.New("stream has already ended")

type options struct {
	strict bool
	logger log.Logger
}

// Option configures an Ingester.
type Option func(*options)

// WithStrictRows rejects rows shorter than the first row with a ShapeError
// instead of zero-filling them.
func WithStrictRows() Option {
	return func(o *options) {
		o.strict = true
	}
}

// WithLogger sets the logger for ingestion events.
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Ingester accumulates rows into a matrix. The first row fixes the column
// count; longer rows are truncated and shorter rows are zero-filled with a
// ShortRowWarning, or rejected under WithStrictRows. An Ingester is not
// safe for concurrent use.
type Ingester struct {
	opts  options
	buf   *buffer.Buffer
	cols  int
	rows  int
	ended bool
}

// NewIngester returns an empty Ingester.
func NewIngester(opts ...Option) *Ingester {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.GetLoggerWithName("stream")
	}
	return &Ingester{opts: o, buf: buffer.New(0, 0)}
}

// Rows returns the number of rows pushed so far.
func (in *Ingester) Rows() int { return in.rows }

// Cols returns the column count fixed by the first row, or 0 before it.
func (in *Ingester) Cols() int { return in.cols }

// Push appends one row.
func (in *Ingester) Push(row []float64) error {
	if in.ended {
		return errors.WithStack(ErrEnded)
	}
	if in.rows == 0 {
		if len(row) == 0 {
			return errors.NewValidationError("row", "the first row must not be empty", 0)
		}
		in.cols = len(row)
	}
	if len(row) < in.cols {
		if in.opts.strict {
			return errors.NewShapeError("Push", 1, len(row), 1, in.cols)
		}
		errors.Warn(errors.NewShortRowWarning(in.rows, in.cols, len(row)))
	}

	n, m := in.rows, in.cols
	if in.buf.Cap() <= n*m {
		in.buf.Reserve(max(2*n, n+16) * m)
	}
	in.buf.GrowIfNeeded(m, n+1)
	dst := in.buf.Live()[n*m:]
	for i := 0; i < min(m, len(row)); i++ {
		dst[i] = float32(row[i])
	}
	in.rows++
	return nil
}

// End finishes the stream and returns the rows×cols matrix. A stream with
// no rows yields a 0×0 matrix.
func (in *Ingester) End() (*matrix.Matrix, error) {
	if in.ended {
		return nil, errors.WithStack(ErrEnded)
	}
	in.ended = true

	staged := matrix.Wrap(in.cols, in.rows, in.buf.Live())
	out := staged.Transpose()
	in.buf.Release()

	in.opts.logger.Debug("stream ended",
		log.OperationKey, log.OperationRead,
		log.RowsKey, out.Rows(),
		log.ColsKey, out.Cols(),
	)
	return out, nil
}
