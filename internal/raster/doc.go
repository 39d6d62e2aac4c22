// Package raster reads elevation grids into geomorphon.Grid values and
// writes classification bands back out.
//
// Two encodings are supported: the ESRI ASCII grid text format (.asc) and
// single-band grayscale TIFF (.tif, .tiff). The format is chosen by file
// extension, and a run must read and write the same format.
package raster
