// Package report renders diagnostic charts for decomposition results.
package report

import (
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/lalg/matrix"
	"github.com/YuminosukeSato/lalg/pkg/errors"
)

// Default chart size.
const (
	DefaultWidth  = 6 * vg.Inch
	DefaultHeight = 4 * vg.Inch
)

// ScreeOption configures a scree chart.
type ScreeOption func(*screeOptions)

type screeOptions struct {
	title     string
	threshold float32
	width     vg.Length
	height    vg.Length
}

// WithTitle sets the chart title.
func WithTitle(title string) ScreeOption {
	return func(o *screeOptions) { o.title = title }
}

// WithThreshold draws a horizontal marker at the PCA variance target.
// A zero threshold disables the marker.
func WithThreshold(varianceToKeep float32) ScreeOption {
	return func(o *screeOptions) { o.threshold = varianceToKeep }
}

// WithSize sets the rendered size.
func WithSize(width, height vg.Length) ScreeOption {
	return func(o *screeOptions) {
		o.width = width
		o.height = height
	}
}

func defaultScreeOptions() screeOptions {
	return screeOptions{
		title:     "Explained variance",
		threshold: matrix.DefaultVarianceToKeep,
		width:     DefaultWidth,
		height:    DefaultHeight,
	}
}

// ScreePlot builds a chart with one bar per singular value's share of the
// total and a line for the cumulative share.
func ScreePlot(res matrix.SVDResult, opts ...ScreeOption) (*plot.Plot, error) {
	o := defaultScreeOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if res.S == nil || res.S.Len() == 0 {
		return nil, errors.NewValidationError("res", "no singular values to plot", 0)
	}
	if o.threshold != 0 {
		if err := matrix.CheckVariance(o.threshold); err != nil {
			return nil, err
		}
	}

	ratios := res.ExplainedVariance()
	bars := make(plotter.Values, len(ratios))
	cum := make(plotter.XYs, len(ratios))
	var total float64
	for i, r := range ratios {
		bars[i] = float64(r)
		total += float64(r)
		cum[i] = plotter.XY{X: float64(i), Y: min(total, 1)}
	}

	p := plot.New()
	p.Title.Text = o.title
	p.X.Label.Text = "component"
	p.Y.Label.Text = "share"

	chart, err := plotter.NewBarChart(bars, vg.Points(12))
	if err != nil {
		return nil, errors.Wrap(err, "scree bars")
	}
	line, err := plotter.NewLine(cum)
	if err != nil {
		return nil, errors.Wrap(err, "scree cumulative line")
	}
	p.Add(chart, line)
	p.Legend.Add("component", chart)
	p.Legend.Add("cumulative", line)

	if o.threshold != 0 {
		mark, err := plotter.NewLine(plotter.XYs{
			{X: 0, Y: float64(o.threshold)},
			{X: float64(len(ratios) - 1), Y: float64(o.threshold)},
		})
		if err != nil {
			return nil, errors.Wrap(err, "scree threshold line")
		}
		mark.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(mark)
		p.Legend.Add("target", mark)
	}

	// Add widens the axes to the data, so the range is fixed last.
	p.Y.Min, p.Y.Max = 0, 1

	names := make([]string, len(ratios))
	for i := range names {
		names[i] = "PC" + strconv.Itoa(i+1)
	}
	p.NominalX(names...)
	return p, nil
}

// WriteScree renders the scree chart to w in the given format
// (png, svg, pdf, eps, jpg, tif).
func WriteScree(w io.Writer, format string, res matrix.SVDResult, opts ...ScreeOption) error {
	o := defaultScreeOptions()
	for _, opt := range opts {
		opt(&o)
	}
	p, err := ScreePlot(res, opts...)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(o.width, o.height, strings.ToLower(format))
	if err != nil {
		return errors.Wrapf(err, "render scree as %q", format)
	}
	_, err = wt.WriteTo(w)
	return errors.Wrap(err, "write scree")
}

// SaveScree writes the scree chart to path; the extension picks the format.
func SaveScree(path string, res matrix.SVDResult, opts ...ScreeOption) error {
	if filepath.Ext(path) == "" {
		return errors.NewValidationError("path", "needs a file extension to pick the format", path)
	}
	o := defaultScreeOptions()
	for _, opt := range opts {
		opt(&o)
	}
	p, err := ScreePlot(res, opts...)
	if err != nil {
		return err
	}
	return errors.Wrapf(p.Save(o.width, o.height, path), "save scree to %s", path)
}
