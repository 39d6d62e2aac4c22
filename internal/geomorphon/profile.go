package geomorphon

import "math"

const radToDeg = 180 / math.Pi

// Profile holds the extremal line-of-sight angles found along one ray.
// Angles are in degrees above (positive) or below (negative) the horizon.
type Profile struct {
	MaxAngle   float32 // zenith side; starts at -90
	MinAngle   float32 // nadir side; starts at +90
	MaxAbsDiff float32 // largest |dz| accepted so far
}

// NewProfile returns a profile that has not seen any target.
func NewProfile() Profile {
	return Profile{MaxAngle: -90, MinAngle: 90}
}

// Empty reports whether no target ever updated the profile.
func (p Profile) Empty() bool {
	return p.MaxAbsDiff == 0
}

// ScanRay walks from the centre cell (r, c) along d for steps 0..radius and
// returns the resulting profile. The centre must hold a valid sample.
//
// A target only updates the profile when its absolute elevation difference
// from the centre is strictly larger than any accepted before it, so the
// profile follows the farthest extreme relief rather than every step.
// MaxAngle keeps the later value on ties, MinAngle keeps the earlier one.
func ScanRay(g *Grid, r, c int, d Direction, radius int) Profile {
	p := NewProfile()
	z0 := g.At(r, c)
	dr, dc := d.Offset()
	run := d.StepLength() * g.CellSize

	for a := 0; a <= radius; a++ {
		tr, tc := r+a*dr, c+a*dc
		if !g.InBounds(tr, tc) {
			// every later step is outside as well
			break
		}
		z := g.At(tr, tc)
		if g.IsNoData(z) {
			continue
		}
		diff := z - z0
		absDiff := diff
		if absDiff < 0 {
			absDiff = -absDiff
		}
		if !(absDiff > p.MaxAbsDiff) {
			continue
		}
		angle := float32(math.Atan(float64(diff)/(float64(a)*run)) * radToDeg)
		if angle >= p.MaxAngle {
			p.MaxAngle = angle
		}
		if angle < p.MinAngle {
			p.MinAngle = angle
		}
		p.MaxAbsDiff = absDiff
	}
	return p
}
