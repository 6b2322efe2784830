package rings

import "math"

// Shade is how a single pixel of a progress ring is painted.
type Shade int

const (
	ShadeNone Shade = iota
	ShadeTrack
	ShadeFill
)

// inset keeps the disc clear of the raster edge.
const inset = 2

// ShadeAt paints a pie-style indicator: a faint disc while the block is not
// complete, covered clockwise from twelve o'clock by a sector of percent.
func ShadeAt(x, y, w, h int, percent float64) Shade {
	size := min(w, h) - 2*inset
	if size <= 0 {
		return ShadeNone
	}
	radius := float64(size) / 2
	dx := float64(x) + 0.5 - float64(w)/2
	dy := float64(y) + 0.5 - float64(h)/2
	if dx*dx+dy*dy > radius*radius {
		return ShadeNone
	}

	if percent > 0 {
		angle := math.Atan2(dx, -dy)
		if angle < 0 {
			angle += 2 * math.Pi
		}
		if angle/(2*math.Pi)*100 < percent {
			return ShadeFill
		}
	}
	if percent < 100 {
		return ShadeTrack
	}
	return ShadeFill
}
