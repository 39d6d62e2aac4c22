package geomorphon

import "strings"

// MaxCode is the largest ternary pattern code (3^8 - 1).
const MaxCode = 6560

// Pattern holds one State per Direction, in ring order.
type Pattern [NumDirections]State

// Ternary packs the pattern into a base-3 integer. The North digit is the
// most significant.
func (p Pattern) Ternary() int {
	code := 0
	for _, s := range p {
		code = code*3 + int(s)
	}
	return code
}

// Counts returns the number of Higher and Lower rays.
func (p Pattern) Counts() (higher, lower int) {
	for _, s := range p {
		switch s {
		case Higher:
			higher++
		case Lower:
			lower++
		}
	}
	return higher, lower
}

// PatternFromTernary is the inverse of Pattern.Ternary for codes in
// [0, MaxCode]. Digits above the eighth are ignored.
func PatternFromTernary(code int) Pattern {
	var p Pattern
	for i := NumDirections - 1; i >= 0; i-- {
		p[i] = State(code % 3)
		code /= 3
	}
	return p
}

// String renders the digits most significant first, e.g. "11111111".
func (p Pattern) String() string {
	var b strings.Builder
	for _, s := range p {
		b.WriteByte('0' + byte(s))
	}
	return b.String()
}

// CellPattern profiles and classifies all eight rays of (r, c).
func CellPattern(g *Grid, r, c, radius int) Pattern {
	var p Pattern
	for _, d := range Directions {
		p[d] = Classify(ScanRay(g, r, c, d, radius))
	}
	return p
}
