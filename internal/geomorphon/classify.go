package geomorphon

// State is the three-valued outcome of classifying one ray.
type State uint8

const (
	Lower  State = 0
	Equal  State = 1
	Higher State = 2
)

func (s State) String() string {
	switch s {
	case Lower:
		return "lower"
	case Equal:
		return "equal"
	case Higher:
		return "higher"
	}
	return "State(?)"
}

// Classify converts a ray profile into a State.
//
// phi is the zenith distance of the steepest upward sight line and psi the
// nadir distance of the steepest downward one. The comparison against zero
// is exact.
func Classify(p Profile) State {
	phi := 90 - p.MaxAngle
	psi := 90 + p.MinAngle
	delta := psi - phi
	switch {
	case delta > 0:
		return Higher
	case delta == 0:
		return Equal
	default:
		return Lower
	}
}
