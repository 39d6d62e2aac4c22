package raster

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ReadASCII decodes an ESRI ASCII grid. Header keys are matched
// case-insensitively and may appear in any order. When the header has no
// nodata_value, defaultNoData is used.
func ReadASCII(r io.Reader, defaultNoData float64) (*Dataset, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)

	h, first, err := readASCIIHeader(sc)
	if err != nil {
		return nil, err
	}
	if _, ok := h.values["nodata_value"]; !ok {
		h.NoData = defaultNoData
	}

	// The header is not trusted for sizing until the samples are read.
	n := h.Rows * h.Cols
	elevation := make([]float32, 0, min(n, maxPrealloc))
	tok := first
	for len(elevation) < n {
		if tok == "" {
			if !sc.Scan() {
				break
			}
			tok = sc.Text()
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("parse value %d (%q): %w", len(elevation), tok, err)
		}
		elevation = append(elevation, float32(v))
		tok = ""
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read grid data: %w", err)
	}
	if len(elevation) < n {
		return nil, fmt.Errorf("%w: have %d values, want %d", ErrTruncated, len(elevation), n)
	}

	g, err := h.grid(elevation)
	if err != nil {
		return nil, err
	}
	return &Dataset{Format: FormatASCII, Header: h.Header, Grid: g}, nil
}

const (
	maxDimension = math.MaxInt32
	maxPrealloc  = 1 << 20
)

type asciiHeader struct {
	Header
	values map[string]float64
}

// readASCIIHeader consumes key/value pairs until the first numeric token,
// which is returned so the caller can treat it as the first sample.
func readASCIIHeader(sc *bufio.Scanner) (asciiHeader, string, error) {
	h := asciiHeader{values: make(map[string]float64)}
	var first string
	for sc.Scan() {
		tok := sc.Text()
		if _, err := strconv.ParseFloat(tok, 64); err == nil {
			first = tok
			break
		}
		key := strings.ToLower(tok)
		if !sc.Scan() {
			return h, "", fmt.Errorf("%w: key %q has no value", ErrHeader, tok)
		}
		v, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			return h, "", fmt.Errorf("%w: %s: %v", ErrHeader, key, err)
		}
		h.values[key] = v
	}
	if err := sc.Err(); err != nil {
		return h, "", fmt.Errorf("read grid header: %w", err)
	}

	for _, key := range []string{"ncols", "nrows"} {
		v, ok := h.values[key]
		if !ok {
			return h, "", fmt.Errorf("%w: missing %s", ErrHeader, key)
		}
		if v != math.Trunc(v) || v <= 0 || v > maxDimension {
			return h, "", fmt.Errorf("%w: %s must be an integer in 1..%d, got %v", ErrHeader, key, maxDimension, v)
		}
	}
	h.Cols = int(h.values["ncols"])
	h.Rows = int(h.values["nrows"])
	if h.Rows > math.MaxInt/h.Cols {
		return h, "", fmt.Errorf("%w: %dx%d cells overflow", ErrHeader, h.Rows, h.Cols)
	}

	cellSize, err := h.cellSize()
	if err != nil {
		return h, "", err
	}
	h.CellSize = cellSize

	if x, ok := h.values["xllcenter"]; ok {
		h.XLL, h.Center = x, true
	} else {
		h.XLL = h.values["xllcorner"]
	}
	if y, ok := h.values["yllcenter"]; ok {
		h.YLL, h.Center = y, true
	} else {
		h.YLL = h.values["yllcorner"]
	}
	h.NoData = h.values["nodata_value"]
	return h, first, nil
}

// cellSize accepts either cellsize or a dx/dy pair, which must be equal.
func (h asciiHeader) cellSize() (float64, error) {
	if v, ok := h.values["cellsize"]; ok {
		return v, nil
	}
	dx, okx := h.values["dx"]
	dy, oky := h.values["dy"]
	if !okx || !oky {
		return 0, fmt.Errorf("%w: missing cellsize", ErrHeader)
	}
	if dx != dy {
		return 0, fmt.Errorf("%w: dx=%v dy=%v", ErrUnequalResolution, dx, dy)
	}
	return dx, nil
}

// WriteASCII encodes one band as an ESRI ASCII grid using the georeferencing
// in h. Cells equal to noData are written as-is and declared in the header.
func WriteASCII(w io.Writer, h Header, band []int, noData int) error {
	if len(band) != h.Rows*h.Cols {
		return fmt.Errorf("band has %d cells, header declares %dx%d", len(band), h.Rows, h.Cols)
	}
	xKey, yKey := "xllcorner", "yllcorner"
	if h.Center {
		xKey, yKey = "xllcenter", "yllcenter"
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "ncols              %d\n", h.Cols)
	fmt.Fprintf(bw, "nrows              %d\n", h.Rows)
	fmt.Fprintf(bw, "%-19s%f\n", xKey, h.XLL)
	fmt.Fprintf(bw, "%-19s%f\n", yKey, h.YLL)
	fmt.Fprintf(bw, "cellsize           %f\n", h.CellSize)
	fmt.Fprintf(bw, "nodata_value       %f\n", float64(noData))

	for r := 0; r < h.Rows; r++ {
		row := band[r*h.Cols : (r+1)*h.Cols]
		for _, v := range row {
			bw.WriteString(strconv.Itoa(v))
			bw.WriteByte(' ')
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
