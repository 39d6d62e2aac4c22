package raster

import "errors"

var (
	// ErrUnsupportedFormat is returned for file extensions with no adapter.
	ErrUnsupportedFormat = errors.New("raster: unsupported file format")

	// ErrFormatMismatch is returned when output files do not share the
	// input's format.
	ErrFormatMismatch = errors.New("raster: input and output formats differ")

	// ErrNotProjected is returned when a projection sidecar is required but
	// the input has none.
	ErrNotProjected = errors.New("raster: input has no projection (.prj) file")

	// ErrUnequalResolution is returned when horizontal and vertical cell
	// sizes differ.
	ErrUnequalResolution = errors.New("raster: horizontal and vertical resolution differ")

	// ErrUnsupportedPixelType is returned for TIFF pixel models other than
	// single-band grayscale.
	ErrUnsupportedPixelType = errors.New("raster: unsupported TIFF pixel type")

	// ErrTruncated is returned when an ASCII grid holds fewer values than
	// its header declares.
	ErrTruncated = errors.New("raster: grid data is truncated")

	// ErrHeader is returned for a missing or malformed ASCII grid header.
	ErrHeader = errors.New("raster: invalid grid header")
)
