// Package render draws the scaling frontier chart with gonum/plot.
//
// The chart is a log-log plot of loss against parameter count with two
// curves (compute-optimal frontier, infinite-compute bound), two dotted
// reference lines at fixed model sizes, and four translucent horizontal bands
// whose boundaries are taken from the curves at those sizes. Every visual
// constant lives in Chart; DefaultChart reproduces the reference figure.
package render

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/ja7ad/frontier/pkg/scaling"
	"github.com/ja7ad/frontier/pkg/types"
)

// Chart holds every literal of the figure.
type Chart struct {
	Width, Height vg.Length
	DPI           int // raster formats only

	CurveWidth    vg.Length
	OptimalColor  color.Color
	InfiniteColor color.Color

	// RefSizes are the small and large reference model sizes; the vertical
	// lines are drawn there and the bands are derived from them.
	RefSizes [2]float64
	RefStyle draw.LineStyle

	BandColors [4]color.Color

	XMin, XMax float64
	YMin, YMax float64
	XTicks     []float64
	YTicks     []float64

	AxisWidth  vg.Length
	TickLength vg.Length
	TickWidth  vg.Length
	FontSize   vg.Length
	// LabelPad is the gap between tick marks and tick labels.
	LabelPad vg.Length
}

// DefaultChart returns the reference figure: 14x9in at 150 dpi.
func DefaultChart() *Chart {
	return &Chart{
		Width:  14 * vg.Inch,
		Height: 9 * vg.Inch,
		DPI:    150,

		CurveWidth:    vg.Points(5),
		OptimalColor:  color.RGBA{R: 0, G: 191, B: 255, A: 255},   // blue-ish
		InfiniteColor: color.RGBA{R: 255, G: 105, B: 180, A: 255}, // pink-ish

		RefSizes: [2]float64{1e9, 1e11},
		RefStyle: draw.LineStyle{
			Color:  color.NRGBA{A: 178}, // black, alpha 0.7
			Width:  vg.Points(2),
			Dashes: []vg.Length{vg.Points(2), vg.Points(3.3)},
		},

		BandColors: [4]color.Color{
			hexA(0xcccacc, 0.3),
			hexA(0xeb9bdf, 0.3),
			hexA(0xabe0a4, 0.3),
			hexA(0xb9e0fa, 0.3),
		},

		XMin: 2e8, XMax: 5e11,
		YMin: 1.6, YMax: 3.25,
		XTicks: []float64{1e9, 1e10, 1e11},
		YTicks: []float64{2, 3},

		AxisWidth:  vg.Points(3),
		TickLength: vg.Points(6),
		TickWidth:  vg.Points(2),
		FontSize:   vg.Points(28),
		LabelPad:   vg.Points(10),
	}
}

// Frontier is everything the chart plots.
type Frontier struct {
	Optimal  scaling.Curve
	Infinite scaling.Curve
	Bands    scaling.Bands
}

// Build evaluates both curves over ns and the band boundaries at the chart's
// reference sizes.
func (ch *Chart) Build(m *scaling.Model, ns []float64) (Frontier, error) {
	b, err := m.Bands(ch.RefSizes[0], ch.RefSizes[1], ch.YMin, ch.YMax)
	if err != nil {
		return Frontier{}, err
	}
	return Frontier{
		Optimal:  m.ComputeOptimalFrontier(ns),
		Infinite: m.InfiniteComputeFrontier(ns),
		Bands:    b,
	}, nil
}

// Plot lays the frontier out on a new plot.
func (ch *Chart) Plot(f Frontier) (*plot.Plot, error) {
	if len(f.Optimal.Points) == 0 || len(f.Infinite.Points) == 0 {
		return nil, ErrEmptyCurve
	}

	p := plot.New()
	p.BackgroundColor = color.White

	// bands first so curves and reference lines sit on top
	for i := range ch.BandColors {
		if f.Bands.Empty(i) {
			continue
		}
		lo, hi := f.Bands.Span(i)
		poly, err := plotter.NewPolygon(plotter.XYs{
			{X: ch.XMin, Y: lo}, {X: ch.XMax, Y: lo},
			{X: ch.XMax, Y: hi}, {X: ch.XMin, Y: hi},
		})
		if err != nil {
			return nil, fmt.Errorf("band %d: %w", i, err)
		}
		poly.Color = ch.BandColors[i]
		poly.LineStyle.Width = 0
		poly.LineStyle.Color = color.Transparent
		p.Add(poly)
	}

	for _, n := range ch.RefSizes {
		ref, err := plotter.NewLine(plotter.XYs{{X: n, Y: ch.YMin}, {X: n, Y: ch.YMax}})
		if err != nil {
			return nil, fmt.Errorf("reference line at %g: %w", n, err)
		}
		ref.LineStyle = ch.RefStyle
		p.Add(ref)
	}

	for _, c := range []struct {
		curve scaling.Curve
		color color.Color
	}{
		{f.Optimal, ch.OptimalColor},
		{f.Infinite, ch.InfiniteColor},
	} {
		l, err := plotter.NewLine(curveXYs(c.curve))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.curve.Name, err)
		}
		l.LineStyle.Width = ch.CurveWidth
		l.LineStyle.Color = c.color
		p.Add(l)
	}

	// Add widens the ranges to the data; pin them afterwards.
	p.X.Min, p.X.Max = ch.XMin, ch.XMax
	p.Y.Min, p.Y.Max = ch.YMin, ch.YMax
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.ConstantTicks(countTicks(ch.XTicks))
	p.Y.Tick.Marker = plot.ConstantTicks(intTicks(ch.YTicks))

	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.Padding = 0
		ax.LineStyle.Width = ch.AxisWidth
		ax.Tick.Length = ch.TickLength
		ax.Tick.LineStyle.Width = ch.TickWidth
		ax.Tick.Label.Font.Size = ch.FontSize
	}
	padTickLabels(&p.X, &p.Y, ch.LabelPad)

	return p, nil
}

// padTickLabels moves tick labels away from the ticks by pad: x labels down,
// y labels left. gonum/plot has no tick label padding, so the alignment is
// offset by pad in units of the label's height (x) or width (y). The axes do
// not reserve the extra space; draw crops the canvas by pad to make room.
func padTickLabels(x, y *plot.Axis, pad vg.Length) {
	if pad <= 0 {
		return
	}
	if h := maxTickLabel(x, x.Tick.Label.Height); h > 0 {
		x.Tick.Label.YAlign -= text.YAlignment(pad / h)
	}
	if w := maxTickLabel(y, y.Tick.Label.Width); w > 0 {
		y.Tick.Label.XAlign -= text.XAlignment(pad / w)
	}
}

func maxTickLabel(ax *plot.Axis, size func(string) vg.Length) vg.Length {
	var m vg.Length
	for _, t := range ax.Tick.Marker.Ticks(ax.Min, ax.Max) {
		if t.Label == "" {
			continue
		}
		if v := size(t.Label); v > m {
			m = v
		}
	}
	return m
}

// WriteTo encodes the chart in format (png, jpg, tif, svg, pdf, eps) to w.
func (ch *Chart) WriteTo(w io.Writer, format string, f Frontier) error {
	p, err := ch.Plot(f)
	if err != nil {
		return err
	}

	format = strings.ToLower(format)
	var c vg.CanvasWriterTo
	switch format {
	case "png":
		c = vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(ch.Width, ch.Height), vgimg.UseDPI(ch.DPI))}
	case "jpg", "jpeg", "tif", "tiff", "svg", "pdf", "eps":
		c, err = draw.NewFormattedCanvas(ch.Width, ch.Height, format)
		if err != nil {
			return fmt.Errorf("encode %s: %w", format, err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrFormat, format)
	}

	// room for the padded tick labels on the left and bottom
	p.Draw(draw.Crop(draw.New(c), ch.LabelPad, 0, ch.LabelPad, 0))

	if _, err := c.WriteTo(w); err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	return nil
}

// Save writes the chart to path, creating parent directories. The format is
// taken from the file extension.
func (ch *Chart) Save(path string, f Frontier) (err error) {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if format == "" {
		return fmt.Errorf("%w: %s has no extension", ErrFormat, path)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	return ch.WriteTo(out, format, f)
}

func curveXYs(c scaling.Curve) plotter.XYs {
	xs, ys := c.XYs()
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X, pts[i].Y = xs[i], ys[i]
	}
	return pts
}

// countTicks labels parameter counts the short way: 1B, 10B, 100B.
func countTicks(vs []float64) []plot.Tick {
	ts := make([]plot.Tick, len(vs))
	for i, v := range vs {
		ts[i] = plot.Tick{Value: v, Label: types.Count(v).Humanized()}
	}
	return ts
}

func intTicks(vs []float64) []plot.Tick {
	ts := make([]plot.Tick, len(vs))
	for i, v := range vs {
		ts[i] = plot.Tick{Value: v, Label: fmt.Sprintf("%d", int(v))}
	}
	return ts
}

func hexA(rgb uint32, alpha float64) color.NRGBA {
	return color.NRGBA{
		R: uint8(rgb >> 16),
		G: uint8(rgb >> 8),
		B: uint8(rgb),
		A: uint8(alpha*255 + 0.5),
	}
}
