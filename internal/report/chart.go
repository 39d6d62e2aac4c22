package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/geomorphons/internal/geomorphon"
)

// DefaultTopCodes is the number of codes shown in the frequency chart.
const DefaultTopCodes = 30

// WriteChartHTML renders an HTML page with the most frequent canonical
// codes and the landform histogram of s.
func WriteChartHTML(w io.Writer, s Summary, title string, topN int) error {
	top := s.TopCodes(topN)
	codes := make([]string, len(top))
	cells := make([]opts.BarData, len(top))
	for i, cc := range top {
		codes[i] = strconv.Itoa(cc.Code)
		cells[i] = opts.BarData{
			Value: cc.Cells,
			Name:  geomorphon.PatternFromTernary(cc.Code).String(),
		}
	}

	codeBar := charts.NewBar()
	codeBar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "100%", Height: "540px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Canonical codes",
			Subtitle: fmt.Sprintf("%d classified cells, %d distinct codes", s.Classified, s.DistinctCodes()),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "code"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "cells"}),
	)
	codeBar.SetXAxis(codes).AddSeries("cells", cells)

	var landforms []string
	var landformCells []opts.BarData
	for l := geomorphon.Flat; l <= geomorphon.Pit; l++ {
		landforms = append(landforms, l.String())
		landformCells = append(landformCells, opts.BarData{Value: s.LandformCounts[l]})
	}

	formBar := charts.NewBar()
	formBar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Landforms",
			Subtitle: fmt.Sprintf("higher %.2f±%.2f, lower %.2f±%.2f", s.MeanHigher, s.StdHigher, s.MeanLower, s.StdLower),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	formBar.SetXAxis(landforms).
		AddSeries("cells", landformCells,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)

	page := components.NewPage()
	page.AddCharts(codeBar, formBar)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
