package text

import "math"

// Orientation classifies the rotation of a glyph or of a set of glyphs.
type Orientation int

const (
	// OrientationAny is used for empty glyph sets
	OrientationAny Orientation = iota
	// Rot0 is upright horizontal text
	Rot0
	// RotPi2 is text rotated by 90 degrees
	RotPi2
	// RotPi is upside-down text
	RotPi
	// Rot3Pi2 is text rotated by 270 degrees
	Rot3Pi2
	// RotIrregular is any angle that is not a multiple of 90 degrees
	RotIrregular
)

// orientationTolerance is the slack, in degrees, when snapping an angle to
// a quarter turn.
const orientationTolerance = 1.0

// String returns a string representation of the orientation
func (o Orientation) String() string {
	switch o {
	case OrientationAny:
		return "any"
	case Rot0:
		return "rot0"
	case RotPi2:
		return "rot90"
	case RotPi:
		return "rot180"
	case Rot3Pi2:
		return "rot270"
	case RotIrregular:
		return "irregular"
	default:
		return "unknown"
	}
}

// Degrees returns the rotation angle for quarter-turn orientations and
// false for Any and Irregular.
func (o Orientation) Degrees() (float64, bool) {
	switch o {
	case Rot0:
		return 0, true
	case RotPi2:
		return 90, true
	case RotPi:
		return 180, true
	case Rot3Pi2:
		return 270, true
	default:
		return 0, false
	}
}

// ClassifyRotation maps an angle in degrees to an orientation
func ClassifyRotation(deg float64) Orientation {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return RotIrregular
	}
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}

	for _, q := range []struct {
		angle float64
		o     Orientation
	}{{0, Rot0}, {90, RotPi2}, {180, RotPi}, {270, Rot3Pi2}, {360, Rot0}} {
		if math.Abs(a-q.angle) <= orientationTolerance {
			return q.o
		}
	}
	return RotIrregular
}

// DominantOrientation returns the most frequent orientation among glyphs.
// Ties prefer Rot0, then the lower enum value. Empty input yields
// OrientationAny.
func DominantOrientation(glyphs []Glyph) Orientation {
	if len(glyphs) == 0 {
		return OrientationAny
	}

	counts := make(map[Orientation]int)
	for _, g := range glyphs {
		counts[ClassifyRotation(g.Rotation)]++
	}

	best := Rot0
	bestCount := counts[Rot0]
	for _, o := range []Orientation{RotPi2, RotPi, Rot3Pi2, RotIrregular} {
		if counts[o] > bestCount {
			best = o
			bestCount = counts[o]
		}
	}
	return best
}
