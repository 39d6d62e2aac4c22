package geomorphon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func uniform(s State) Pattern {
	var p Pattern
	for i := range p {
		p[i] = s
	}
	return p
}

func TestPattern_Ternary(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, uniform(Lower).Ternary())
	assert.Equal(t, 3280, uniform(Equal).Ternary())
	assert.Equal(t, MaxCode, uniform(Higher).Ternary())

	var northOnly Pattern
	northOnly[North] = Higher
	assert.Equal(t, 2*2187, northOnly.Ternary())

	var northWestOnly Pattern
	northWestOnly[NorthWest] = Equal
	assert.Equal(t, 1, northWestOnly.Ternary())
}

func TestPattern_Counts(t *testing.T) {
	t.Parallel()

	p := Pattern{Higher, Equal, Lower, Lower, Higher, Higher, Equal, Lower}
	higher, lower := p.Counts()
	assert.Equal(t, 3, higher)
	assert.Equal(t, 3, lower)

	higher, lower = uniform(Equal).Counts()
	assert.Zero(t, higher)
	assert.Zero(t, lower)
}

func TestPatternFromTernary_Inverse(t *testing.T) {
	t.Parallel()

	for code := 0; code <= MaxCode; code++ {
		p := PatternFromTernary(code)
		if got := p.Ternary(); got != code {
			t.Fatalf("PatternFromTernary(%d).Ternary() = %d", code, got)
		}
		higher, lower := p.Counts()
		if higher+lower > NumDirections {
			t.Fatalf("code %d: higher %d + lower %d > 8", code, higher, lower)
		}
	}
}

func TestPattern_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "11111111", uniform(Equal).String())
	assert.Equal(t, "20000001", Pattern{Higher, Lower, Lower, Lower, Lower, Lower, Lower, Equal}.String())
}
