package geomorphon

// PixelResult is the classification of one cell. For a cell without a valid
// elevation every field holds the integer no-data value.
type PixelResult struct {
	Code   int // canonical ternary code
	Raw    int // ternary code before symmetry reduction
	Higher int
	Lower  int
}

// Band selects one of the output layers of a Result.
type Band int

const (
	BandTernary Band = iota
	BandHigher
	BandLower
	BandLandform
)

func (b Band) String() string {
	switch b {
	case BandTernary:
		return "ternary"
	case BandHigher:
		return "higher"
	case BandLower:
		return "lower"
	case BandLandform:
		return "landform"
	}
	return "Band(?)"
}

// Result holds the output bands of a scan, each Rows*Cols row-major.
// Border cells and no-data cells hold NoData in every band.
type Result struct {
	Rows   int
	Cols   int
	NoData int

	Ternary []int
	Higher  []int
	Lower   []int

	classified []bool
}

// NewResult allocates bands pre-filled with noData.
func NewResult(rows, cols, noData int) *Result {
	res := &Result{
		Rows:    rows,
		Cols:    cols,
		NoData:  noData,
		Ternary: make([]int, rows*cols),
		Higher:  make([]int, rows*cols),
		Lower:   make([]int, rows*cols),

		classified: make([]bool, rows*cols),
	}
	for i := range res.Ternary {
		res.Ternary[i] = noData
		res.Higher[i] = noData
		res.Lower[i] = noData
	}
	return res
}

// Set stores a classified pixel at (r, c).
func (res *Result) Set(r, c int, px PixelResult) {
	i := r*res.Cols + c
	res.Ternary[i] = px.Code
	res.Higher[i] = px.Higher
	res.Lower[i] = px.Lower
	res.classified[i] = true
}

// Pixel returns the stored values at (r, c). Raw is not retained by a
// Result and is reported as NoData.
func (res *Result) Pixel(r, c int) PixelResult {
	i := r*res.Cols + c
	return PixelResult{
		Code:   res.Ternary[i],
		Raw:    res.NoData,
		Higher: res.Higher[i],
		Lower:  res.Lower[i],
	}
}

// IsNoData reports whether cell index i was left unclassified.
func (res *Result) IsNoData(i int) bool {
	return !res.classified[i]
}

// Classified returns the number of cells holding a classification.
func (res *Result) Classified() int {
	n := 0
	for _, ok := range res.classified {
		if ok {
			n++
		}
	}
	return n
}

// Landforms derives the landform band from the Higher and Lower bands.
func (res *Result) Landforms() []int {
	out := make([]int, len(res.Ternary))
	for i := range out {
		if res.IsNoData(i) {
			out[i] = res.NoData
			continue
		}
		out[i] = int(FormFor(res.Lower[i], res.Higher[i]))
	}
	return out
}

// Band returns the requested layer. BandLandform is computed on each call.
func (res *Result) Band(b Band) []int {
	switch b {
	case BandTernary:
		return res.Ternary
	case BandHigher:
		return res.Higher
	case BandLower:
		return res.Lower
	case BandLandform:
		return res.Landforms()
	}
	return nil
}
