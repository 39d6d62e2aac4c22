package geomorphon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormFor_Corners(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Flat, FormFor(0, 0))
	assert.Equal(t, Peak, FormFor(8, 0))
	assert.Equal(t, Pit, FormFor(0, 8))
	assert.Equal(t, Ridge, FormFor(6, 1))
	assert.Equal(t, Valley, FormFor(1, 6))
	assert.Equal(t, Slope, FormFor(3, 3))
	assert.Equal(t, Spur, FormFor(4, 2))
	assert.Equal(t, Hollow, FormFor(2, 4))
	assert.Equal(t, Shoulder, FormFor(3, 0))
	assert.Equal(t, Footslope, FormFor(0, 3))
}

func TestFormFor_ImpossibleExactlyWhenOverEight(t *testing.T) {
	t.Parallel()

	for lower := 0; lower <= 8; lower++ {
		for higher := 0; higher <= 8; higher++ {
			got := FormFor(lower, higher)
			if lower+higher > 8 {
				assert.Equal(t, Impossible, got, "lower=%d higher=%d", lower, higher)
			} else {
				assert.NotEqual(t, Impossible, got, "lower=%d higher=%d", lower, higher)
			}
		}
	}
}

func TestFormFor_OutOfRange(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Impossible, FormFor(-1, 0))
	assert.Equal(t, Impossible, FormFor(0, 9))
	assert.Equal(t, Impossible, FormFor(-9999, -9999))
}

func TestLandform_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "peak", Peak.String())
	assert.Equal(t, "pit", Pit.String())
	assert.Equal(t, "impossible", Impossible.String())
	assert.Equal(t, "Landform(?)", Landform(42).String())
}
