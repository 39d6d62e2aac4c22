package raster

import (
	"fmt"
	"image"
	"io"
	"math"

	"golang.org/x/image/tiff"
)

// TIFFNoData is the 16-bit sample written for cells without a classification.
// It replaces the input's no-data value, which an unsigned 16-bit band
// cannot hold when negative.
const TIFFNoData = math.MaxUint16

// ReadTIFF decodes a single-band grayscale TIFF. The reader carries no
// georeferencing, so the cell size and no-data value are supplied by the
// caller.
func ReadTIFF(r io.Reader, cellSize, noData float64) (*Dataset, error) {
	img, err := tiff.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode tiff: %w", err)
	}

	b := img.Bounds()
	rows, cols := b.Dy(), b.Dx()
	elevation := make([]float32, 0, rows*cols)

	switch m := img.(type) {
	case *image.Gray:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				elevation = append(elevation, float32(m.GrayAt(x, y).Y))
			}
		}
	case *image.Gray16:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				elevation = append(elevation, float32(m.Gray16At(x, y).Y))
			}
		}
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedPixelType, img)
	}

	h := Header{
		Cols:     cols,
		Rows:     rows,
		CellSize: cellSize,
		NoData:   noData,
	}
	g, err := h.grid(elevation)
	if err != nil {
		return nil, err
	}
	return &Dataset{Format: FormatTIFF, Header: h, Grid: g}, nil
}

// WriteTIFF encodes one band as a Deflate-compressed 16-bit grayscale TIFF.
// Cells equal to noData, and values outside the 16-bit range, are written
// as TIFFNoData (65535) rather than noData itself; readers of TIFF output
// must treat 65535 as no-data.
func WriteTIFF(w io.Writer, rows, cols int, band []int, noData int) error {
	if len(band) != rows*cols {
		return fmt.Errorf("band has %d cells, want %dx%d", len(band), rows, cols)
	}
	img := image.NewGray16(image.Rect(0, 0, cols, rows))
	for i, v := range band {
		if v == noData || v < 0 || v > math.MaxUint16 {
			v = TIFFNoData
		}
		o := img.PixOffset(i%cols, i/cols)
		img.Pix[o] = uint8(v >> 8)
		img.Pix[o+1] = uint8(v)
	}
	if err := tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
		return fmt.Errorf("encode tiff: %w", err)
	}
	return nil
}
