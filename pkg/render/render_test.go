package render

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/ja7ad/frontier/pkg/scaling"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func build(t *testing.T, ch *Chart) Frontier {
	t.Helper()
	f, err := ch.Build(scaling.New(nil), scaling.DefaultSweep())
	require.NoError(t, err)
	return f
}

func TestDefaultChart_Literals(t *testing.T) {
	ch := DefaultChart()
	assert.Equal(t, [2]float64{1e9, 1e11}, ch.RefSizes)
	assert.Equal(t, 2e8, ch.XMin)
	assert.Equal(t, 5e11, ch.XMax)
	assert.Equal(t, 1.6, ch.YMin)
	assert.Equal(t, 3.25, ch.YMax)
	assert.Equal(t, color.NRGBA{R: 0xcc, G: 0xca, B: 0xcc, A: 77}, ch.BandColors[0])
	assert.Equal(t, color.NRGBA{R: 0xb9, G: 0xe0, B: 0xfa, A: 77}, ch.BandColors[3])
}

func TestBuild_Frontier(t *testing.T) {
	ch := DefaultChart()
	f := build(t, ch)

	require.Len(t, f.Optimal.Points, scaling.SweepCount)
	require.Len(t, f.Infinite.Points, scaling.SweepCount)
	assert.Equal(t, ch.YMin, f.Bands.Edges[0])
	assert.Equal(t, ch.YMax, f.Bands.Edges[4])
}

func TestBuild_InvertedBands(t *testing.T) {
	ch := DefaultChart()
	ch.RefSizes = [2]float64{1e11, 1e9}
	_, err := ch.Build(scaling.New(nil), scaling.DefaultSweep())
	require.ErrorIs(t, err, scaling.ErrBandOrder)
}

func TestPlot_AxesAndTicks(t *testing.T) {
	ch := DefaultChart()
	p, err := ch.Plot(build(t, ch))
	require.NoError(t, err)

	assert.Equal(t, 2e8, p.X.Min)
	assert.Equal(t, 5e11, p.X.Max)
	assert.Equal(t, 1.6, p.Y.Min)
	assert.Equal(t, 3.25, p.Y.Max)
	assert.IsType(t, plot.LogScale{}, p.X.Scale)
	assert.IsType(t, plot.LogScale{}, p.Y.Scale)
	assert.Empty(t, p.Title.Text)
	assert.Empty(t, p.X.Label.Text)
	assert.Empty(t, p.Y.Label.Text)

	var xl []string
	for _, tk := range p.X.Tick.Marker.Ticks(p.X.Min, p.X.Max) {
		xl = append(xl, tk.Label)
	}
	assert.Equal(t, []string{"1B", "10B", "100B"}, xl)

	var yl []string
	for _, tk := range p.Y.Tick.Marker.Ticks(p.Y.Min, p.Y.Max) {
		yl = append(yl, tk.Label)
	}
	assert.Equal(t, []string{"2", "3"}, yl)
}

func TestPlot_TickLabelPadding(t *testing.T) {
	ch := DefaultChart()
	require.Equal(t, vg.Points(10), ch.LabelPad)
	f := build(t, ch)

	ch.LabelPad = 0
	base, err := ch.Plot(f)
	require.NoError(t, err)

	ch.LabelPad = vg.Points(10)
	p, err := ch.Plot(f)
	require.NoError(t, err)

	// x labels move down by the pad
	h := maxTickLabel(&p.X, p.X.Tick.Label.Height)
	require.Greater(t, float64(h), 0.0)
	shift := float64(base.X.Tick.Label.YAlign-p.X.Tick.Label.YAlign) * float64(h)
	assert.InDelta(t, 10.0, shift, 1e-9)

	// y labels move left by the pad
	w := maxTickLabel(&p.Y, p.Y.Tick.Label.Width)
	require.Greater(t, float64(w), 0.0)
	shift = float64(base.Y.Tick.Label.XAlign-p.Y.Tick.Label.XAlign) * float64(w)
	assert.InDelta(t, 10.0, shift, 1e-9)

	assert.Equal(t, base.X.Tick.Label.XAlign, p.X.Tick.Label.XAlign)
	assert.Equal(t, base.Y.Tick.Label.YAlign, p.Y.Tick.Label.YAlign)
}

func TestPlot_ClippedBandsStillRender(t *testing.T) {
	ch := DefaultChart()
	// L_opt(1e11) drops below the y floor: the bottom band is empty
	f, err := ch.Build(scaling.New(&scaling.Params{L0: 1.4}), scaling.DefaultSweep())
	require.NoError(t, err)
	require.True(t, f.Bands.Empty(0))

	ch.Width, ch.Height, ch.DPI = 7*vg.Inch, 4.5*vg.Inch, 72
	var buf bytes.Buffer
	require.NoError(t, ch.WriteTo(&buf, "png", f))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestPlot_EmptyCurve(t *testing.T) {
	_, err := DefaultChart().Plot(Frontier{})
	require.ErrorIs(t, err, ErrEmptyCurve)
}

func TestWriteTo_PNG(t *testing.T) {
	ch := DefaultChart()
	ch.Width, ch.Height, ch.DPI = 7*vg.Inch, 4.5*vg.Inch, 72

	var buf bytes.Buffer
	require.NoError(t, ch.WriteTo(&buf, "PNG", build(t, ch)))
	require.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))

	img, err := png.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	b := img.Bounds()
	assert.Equal(t, 7*72, b.Dx())
	assert.Equal(t, int(4.5*72), b.Dy())
}

func TestWriteTo_SVG(t *testing.T) {
	ch := DefaultChart()
	var buf bytes.Buffer
	require.NoError(t, ch.WriteTo(&buf, "svg", build(t, ch)))
	assert.Contains(t, buf.String(), "<svg")
}

func TestWriteTo_UnknownFormat(t *testing.T) {
	ch := DefaultChart()
	var buf bytes.Buffer
	err := ch.WriteTo(&buf, "bmp", build(t, ch))
	require.ErrorIs(t, err, ErrFormat)
	assert.Zero(t, buf.Len())
}

func TestSave_CreatesFile(t *testing.T) {
	ch := DefaultChart()
	f := build(t, ch)

	path := filepath.Join(t.TempDir(), "out", "scaling_frontier.png")
	require.NoError(t, ch.Save(path, f))

	st, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, st.Size(), int64(0))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, pngMagic))

	img, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, 14*150, img.Bounds().Dx())
	assert.Equal(t, 9*150, img.Bounds().Dy())
}

func TestSave_NoExtension(t *testing.T) {
	ch := DefaultChart()
	err := ch.Save(filepath.Join(t.TempDir(), "chart"), build(t, ch))
	require.ErrorIs(t, err, ErrFormat)
}
