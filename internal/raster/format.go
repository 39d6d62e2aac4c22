package raster

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/banshee-data/geomorphons/internal/fsutil"
)

// Format identifies a raster encoding.
type Format int

const (
	FormatASCII Format = iota + 1
	FormatTIFF
)

func (f Format) String() string {
	switch f {
	case FormatASCII:
		return "ascii-grid"
	case FormatTIFF:
		return "tiff"
	}
	return "unknown"
}

// DetectFormat maps a path's extension to a Format.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".asc":
		return FormatASCII, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
}

// CheckFormats verifies every output path uses the input's format.
func CheckFormats(input string, outputs ...string) (Format, error) {
	in, err := DetectFormat(input)
	if err != nil {
		return 0, err
	}
	for _, out := range outputs {
		f, err := DetectFormat(out)
		if err != nil {
			return 0, err
		}
		if f != in {
			return 0, fmt.Errorf("%w: %s is %s, %s is %s", ErrFormatMismatch, input, in, out, f)
		}
	}
	return in, nil
}

// LoadOptions supplies values a format cannot carry itself.
type LoadOptions struct {
	// NoData is used by ASCII grids whose header omits nodata_value.
	NoData float64
	// TIFFCellSize and TIFFNoData apply to TIFF inputs.
	TIFFCellSize float64
	TIFFNoData   float64
}

// Load reads the raster at path using the adapter for its extension.
func Load(fsys fsutil.FileSystem, path string, opts LoadOptions) (*Dataset, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var ds *Dataset
	switch format {
	case FormatASCII:
		ds, err = ReadASCII(f, opts.NoData)
	case FormatTIFF:
		ds, err = ReadTIFF(f, opts.TIFFCellSize, opts.TIFFNoData)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return ds, nil
}

// Save writes one band to path using the adapter for its extension.
func Save(fsys fsutil.FileSystem, path string, h Header, band []int, noData int) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}
	w, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	switch format {
	case FormatASCII:
		err = WriteASCII(w, h, band, noData)
	case FormatTIFF:
		err = WriteTIFF(w, h.Rows, h.Cols, band, noData)
	}
	if err != nil {
		w.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
