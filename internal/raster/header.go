package raster

import (
	"github.com/banshee-data/geomorphons/internal/geomorphon"
)

// Header describes the georeferencing of a grid. XLL/YLL are the lower-left
// corner, or the lower-left cell centre when Center is set.
type Header struct {
	Cols     int
	Rows     int
	XLL      float64
	YLL      float64
	Center   bool
	CellSize float64
	NoData   float64
}

// Dataset is a decoded input raster.
type Dataset struct {
	Format Format
	Header Header
	Grid   *geomorphon.Grid
}

func (h Header) grid(elevation []float32) (*geomorphon.Grid, error) {
	return geomorphon.NewGrid(h.Rows, h.Cols, h.CellSize, h.NoData, elevation)
}
