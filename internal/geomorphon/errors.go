package geomorphon

import "errors"

var (
	// ErrEmptyGrid is returned when a grid has no rows or no columns.
	ErrEmptyGrid = errors.New("geomorphon: grid must have at least one row and one column")

	// ErrCellSize is returned when the cell size is not a positive finite number.
	ErrCellSize = errors.New("geomorphon: cell size must be positive")

	// ErrShape is returned when the number of samples does not match rows*cols.
	ErrShape = errors.New("geomorphon: sample count does not match grid shape")
)
