package geomorphon

// Landform is a named terrain category derived from the number of Lower and
// Higher rays of a cell.
type Landform int

const (
	Impossible Landform = iota
	Flat
	Peak
	Ridge
	Shoulder
	Spur
	Slope
	Hollow
	Footslope
	Valley
	Pit
)

var landformNames = [...]string{
	Impossible: "impossible",
	Flat:       "flat",
	Peak:       "peak",
	Ridge:      "ridge",
	Shoulder:   "shoulder",
	Spur:       "spur",
	Slope:      "slope",
	Hollow:     "hollow",
	Footslope:  "footslope",
	Valley:     "valley",
	Pit:        "pit",
}

func (l Landform) String() string {
	if l < 0 || int(l) >= len(landformNames) {
		return "Landform(?)"
	}
	return landformNames[l]
}

// forms is indexed [lower][higher]. Cells with lower+higher > 8 cannot occur.
var forms = [9][9]Landform{
	/*        higher: 0       1        2         3          4          5       6       7       8 */
	/* 0 */ {Flat, Flat, Flat, Footslope, Footslope, Valley, Valley, Valley, Pit},
	/* 1 */ {Flat, Flat, Footslope, Footslope, Footslope, Valley, Valley, Valley, Impossible},
	/* 2 */ {Flat, Shoulder, Slope, Slope, Hollow, Hollow, Valley, Impossible, Impossible},
	/* 3 */ {Shoulder, Shoulder, Slope, Slope, Slope, Hollow, Impossible, Impossible, Impossible},
	/* 4 */ {Shoulder, Shoulder, Spur, Slope, Slope, Impossible, Impossible, Impossible, Impossible},
	/* 5 */ {Ridge, Ridge, Spur, Spur, Impossible, Impossible, Impossible, Impossible, Impossible},
	/* 6 */ {Ridge, Ridge, Ridge, Impossible, Impossible, Impossible, Impossible, Impossible, Impossible},
	/* 7 */ {Ridge, Ridge, Impossible, Impossible, Impossible, Impossible, Impossible, Impossible, Impossible},
	/* 8 */ {Peak, Impossible, Impossible, Impossible, Impossible, Impossible, Impossible, Impossible, Impossible},
}

// FormFor maps ray counts to a Landform. Out-of-range counts yield Impossible.
func FormFor(lower, higher int) Landform {
	if lower < 0 || lower > 8 || higher < 0 || higher > 8 {
		return Impossible
	}
	return forms[lower][higher]
}
