package rings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func count(w, h int, percent float64) map[Shade]int {
	counts := map[Shade]int{}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			counts[ShadeAt(x, y, w, h, percent)]++
		}
	}
	return counts
}

func TestShadeEmptyAndFull(t *testing.T) {
	empty := count(64, 64, 0)
	assert.Zero(t, empty[ShadeFill])
	assert.Positive(t, empty[ShadeTrack])

	full := count(64, 64, 100)
	assert.Zero(t, full[ShadeTrack])
	assert.Equal(t, empty[ShadeTrack], full[ShadeFill], "full ring covers the whole disc")
}

func TestShadeGrowsWithPercent(t *testing.T) {
	previous := -1
	for percent := 0.0; percent <= 100; percent += 5 {
		filled := count(80, 60, percent)[ShadeFill]
		assert.GreaterOrEqual(t, filled, previous, "percent %.0f", percent)
		previous = filled
	}
}

func TestShadeFillsClockwiseFromTop(t *testing.T) {
	const w, h = 64, 64
	top := func(percent float64) Shade { return ShadeAt(34, 8, w, h, percent) }
	right := func(percent float64) Shade { return ShadeAt(56, 34, w, h, percent) }
	left := func(percent float64) Shade { return ShadeAt(8, 30, w, h, percent) }

	assert.Equal(t, ShadeFill, top(10))
	assert.Equal(t, ShadeTrack, right(10))
	assert.Equal(t, ShadeFill, right(30))
	assert.Equal(t, ShadeTrack, left(60))
	assert.Equal(t, ShadeFill, left(80))
}

func TestShadeOutsideDiscAndTinyRasters(t *testing.T) {
	assert.Equal(t, ShadeNone, ShadeAt(0, 0, 64, 64, 50), "corner is outside the disc")
	assert.Equal(t, ShadeNone, ShadeAt(1, 1, 3, 3, 50))
}
