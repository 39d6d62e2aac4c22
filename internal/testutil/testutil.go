// Package testutil provides shared test helpers and synthetic elevation
// fixtures.
//
// Fixtures are built directly as geomorphon grids so the scanner and report
// tests exercise the same terrain shapes.
package testutil

import (
	"math/rand"
	"testing"

	"github.com/banshee-data/geomorphons/internal/geomorphon"
)

// NoData is the sentinel used by every fixture.
const NoData = -9999

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// NewGrid builds a grid from a row-major function of (r, c).
func NewGrid(t testing.TB, rows, cols int, cellSize float64, z func(r, c int) float32) *geomorphon.Grid {
	t.Helper()
	elev := make([]float32, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			elev[r*cols+c] = z(r, c)
		}
	}
	g, err := geomorphon.NewGrid(rows, cols, cellSize, NoData, elev)
	AssertNoError(t, err)
	return g
}

// FlatGrid returns a grid with every sample at height.
func FlatGrid(t testing.TB, rows, cols int, height float32) *geomorphon.Grid {
	t.Helper()
	return NewGrid(t, rows, cols, 1, func(int, int) float32 { return height })
}

// SpikeGrid returns a flat grid at base whose cell (r0, c0) sits at top.
// A top above base gives an isolated peak, below base an isolated pit.
func SpikeGrid(t testing.TB, rows, cols, r0, c0 int, base, top float32) *geomorphon.Grid {
	t.Helper()
	return NewGrid(t, rows, cols, 1, func(r, c int) float32 {
		if r == r0 && c == c0 {
			return top
		}
		return base
	})
}

// RampGrid returns a plane rising by slope per cell towards the east.
func RampGrid(t testing.TB, rows, cols int, slope float32) *geomorphon.Grid {
	t.Helper()
	return NewGrid(t, rows, cols, 1, func(_, c int) float32 { return float32(c) * slope })
}

// RandomGrid returns a reproducible rough surface. Roughly holeFraction of
// the samples are replaced with NoData.
func RandomGrid(t testing.TB, rows, cols int, seed int64, holeFraction float64) *geomorphon.Grid {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	return NewGrid(t, rows, cols, 10, func(r, c int) float32 {
		if rng.Float64() < holeFraction {
			return NoData
		}
		// integer heights make exact ties between rays common
		return float32(100 + rng.Intn(40) + (r+c)/3)
	})
}
