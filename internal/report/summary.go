// Package report summarises scan results and renders them as PNG heatmaps
// and HTML charts.
package report

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/geomorphons/internal/geomorphon"
)

// Summary aggregates one scan result.
type Summary struct {
	Cells      int
	Classified int

	// CodeCounts maps canonical ternary codes to the number of cells.
	CodeCounts     map[int]int
	LandformCounts map[geomorphon.Landform]int

	MeanHigher float64
	StdHigher  float64
	MeanLower  float64
	StdLower   float64
}

// CodeCount is one histogram bucket.
type CodeCount struct {
	Code  int
	Cells int
}

// Summarize counts codes and landforms and computes ray-count statistics
// over the classified cells of res.
func Summarize(res *geomorphon.Result) Summary {
	s := Summary{
		Cells:          len(res.Ternary),
		CodeCounts:     make(map[int]int),
		LandformCounts: make(map[geomorphon.Landform]int),
	}

	higher := make([]float64, 0, len(res.Ternary))
	lower := make([]float64, 0, len(res.Ternary))
	for i := range res.Ternary {
		if res.IsNoData(i) {
			continue
		}
		s.CodeCounts[res.Ternary[i]]++
		s.LandformCounts[geomorphon.FormFor(res.Lower[i], res.Higher[i])]++
		higher = append(higher, float64(res.Higher[i]))
		lower = append(lower, float64(res.Lower[i]))
	}
	s.Classified = len(higher)

	switch {
	case s.Classified == 1:
		s.MeanHigher, s.MeanLower = higher[0], lower[0]
	case s.Classified > 1:
		s.MeanHigher, s.StdHigher = stat.MeanStdDev(higher, nil)
		s.MeanLower, s.StdLower = stat.MeanStdDev(lower, nil)
	}
	return s
}

// DistinctCodes is the number of canonical codes present.
func (s Summary) DistinctCodes() int {
	return len(s.CodeCounts)
}

// TopCodes returns the n most frequent codes, ties broken by code. n <= 0
// returns every code.
func (s Summary) TopCodes(n int) []CodeCount {
	out := make([]CodeCount, 0, len(s.CodeCounts))
	for code, cells := range s.CodeCounts {
		out = append(out, CodeCount{Code: code, Cells: cells})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cells != out[j].Cells {
			return out[i].Cells > out[j].Cells
		}
		return out[i].Code < out[j].Code
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
