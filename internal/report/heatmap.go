package report

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/geomorphons/internal/geomorphon"
)

// bandGrid adapts one result band to plotter.GridXYZ. Raster row 0 is the
// top of the image, so rows are flipped onto the plot's upward Y axis.
type bandGrid struct {
	res    *geomorphon.Result
	values []int
	min    float64
	max    float64
}

func newBandGrid(res *geomorphon.Result, b geomorphon.Band) *bandGrid {
	g := &bandGrid{res: res, values: res.Band(b), min: math.Inf(1), max: math.Inf(-1)}
	for i, v := range g.values {
		if res.IsNoData(i) {
			continue
		}
		g.min = math.Min(g.min, float64(v))
		g.max = math.Max(g.max, float64(v))
	}
	if math.IsInf(g.min, 1) {
		g.min, g.max = 0, 1
	}
	if g.max <= g.min {
		g.max = g.min + 1
	}
	return g
}

func (g *bandGrid) Dims() (c, r int) { return g.res.Cols, g.res.Rows }

func (g *bandGrid) Z(c, r int) float64 {
	i := (g.res.Rows-1-r)*g.res.Cols + c
	if g.res.IsNoData(i) {
		return math.NaN()
	}
	return float64(g.values[i])
}

func (g *bandGrid) X(c int) float64 { return float64(c) }
func (g *bandGrid) Y(r int) float64 { return float64(r) }
func (g *bandGrid) Min() float64    { return g.min }
func (g *bandGrid) Max() float64    { return g.max }

// WriteHeatmapPNG renders band b of res as a PNG heatmap. Unclassified
// cells are drawn transparent.
func WriteHeatmapPNG(w io.Writer, res *geomorphon.Result, b geomorphon.Band, title string) error {
	if res.Rows == 0 || res.Cols == 0 {
		return fmt.Errorf("empty result")
	}
	grid := newBandGrid(res, b)

	hm := plotter.NewHeatMap(grid, palette.Heat(64, 1))
	hm.Min, hm.Max = grid.Min(), grid.Max()
	hm.NaN = color.Transparent

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Column"
	p.Y.Label.Text = "Row (from bottom)"
	p.Add(hm)

	width := 8 * vg.Inch
	height := width * vg.Length(res.Rows) / vg.Length(res.Cols)
	if height < 3*vg.Inch {
		height = 3 * vg.Inch
	}

	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("render heatmap: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write heatmap: %w", err)
	}
	return nil
}

// WriteLandformBarsPNG renders the landform histogram of s as a PNG bar chart.
func WriteLandformBarsPNG(w io.Writer, s Summary, title string) error {
	names := make([]string, 0, int(geomorphon.Pit))
	values := make(plotter.Values, 0, int(geomorphon.Pit))
	for l := geomorphon.Flat; l <= geomorphon.Pit; l++ {
		names = append(names, l.String())
		values = append(values, float64(s.LandformCounts[l]))
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return fmt.Errorf("build bar chart: %w", err)
	}
	bars.Color = color.RGBA{R: 49, G: 104, B: 142, A: 255}

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "Cells"
	p.Add(bars)
	p.NominalX(names...)

	wt, err := p.WriterTo(8*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("render bar chart: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write bar chart: %w", err)
	}
	return nil
}
