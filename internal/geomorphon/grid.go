package geomorphon

import (
	"fmt"
	"math"
)

// Grid is a read-only elevation raster stored row-major.
//
// CellSize is the ground distance covered by one cell and is assumed equal
// along both axes. Any sample equal to NoData is treated as missing.
type Grid struct {
	Rows     int
	Cols     int
	CellSize float64
	NoData   float64

	// Elevation holds Rows*Cols samples, row 0 first.
	Elevation []float32
}

// NewGrid wraps elevation samples in a Grid after validating its geometry.
// The slice is not copied; callers must not mutate it while a scan runs.
func NewGrid(rows, cols int, cellSize, noData float64, elevation []float32) (*Grid, error) {
	g := &Grid{
		Rows:      rows,
		Cols:      cols,
		CellSize:  cellSize,
		NoData:    noData,
		Elevation: elevation,
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Validate checks the preconditions the scanner relies on.
func (g *Grid) Validate() error {
	if g.Rows <= 0 || g.Cols <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrEmptyGrid, g.Rows, g.Cols)
	}
	if !(g.CellSize > 0) || math.IsInf(g.CellSize, 0) {
		return fmt.Errorf("%w: got %v", ErrCellSize, g.CellSize)
	}
	if g.Rows > math.MaxInt/g.Cols {
		return fmt.Errorf("%w: %dx%d cells overflow", ErrShape, g.Rows, g.Cols)
	}
	if len(g.Elevation) != g.Rows*g.Cols {
		return fmt.Errorf("%w: have %d samples, want %d", ErrShape, len(g.Elevation), g.Rows*g.Cols)
	}
	return nil
}

// InBounds reports whether (r, c) lies inside the grid.
func (g *Grid) InBounds(r, c int) bool {
	return r >= 0 && r < g.Rows && c >= 0 && c < g.Cols
}

// At returns the sample at (r, c). It does not check bounds.
func (g *Grid) At(r, c int) float32 {
	return g.Elevation[r*g.Cols+c]
}

// IsNoData reports whether v is the missing-data sentinel.
func (g *Grid) IsNoData(v float32) bool {
	return v == float32(g.NoData)
}

// IsInterior reports whether (r, c) is a classifiable cell, i.e. not on the
// one-cell border.
func (g *Grid) IsInterior(r, c int) bool {
	return r >= 1 && r <= g.Rows-2 && c >= 1 && c <= g.Cols-2
}

// DefaultRadius is the scan radius that lets a ray reach any cell of the grid.
func (g *Grid) DefaultRadius() int {
	if g.Rows > g.Cols {
		return g.Rows
	}
	return g.Cols
}
