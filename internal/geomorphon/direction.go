package geomorphon

import "math"

// Direction is one of the eight compass rays. Its value is the position of
// the ray on the clockwise ring and the position of its digit in a Pattern.
type Direction int

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// NumDirections is the size of the direction ring.
const NumDirections = 8

// Directions lists all rays in ring order.
var Directions = [NumDirections]Direction{
	North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest,
}

// Row and column deltas; row 0 is the northern edge of the grid.
var (
	directionRow = [NumDirections]int{-1, -1, 0, 1, 1, 1, 0, -1}
	directionCol = [NumDirections]int{0, 1, 1, 1, 0, -1, -1, -1}
)

var directionNames = [NumDirections]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Offset returns the row and column step of the ray.
func (d Direction) Offset() (dr, dc int) {
	return directionRow[d], directionCol[d]
}

// Diagonal reports whether the ray moves along both axes.
func (d Direction) Diagonal() bool {
	return directionRow[d] != 0 && directionCol[d] != 0
}

// StepLength is the distance, in cells, covered by one step along the ray.
func (d Direction) StepLength() float64 {
	if d.Diagonal() {
		return math.Sqrt2
	}
	return 1
}

func (d Direction) String() string {
	if d < 0 || d >= NumDirections {
		return "Direction(?)"
	}
	return directionNames[d]
}
