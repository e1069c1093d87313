package layout

import (
	"math"

	"github.com/tsawler/glyphtext/text"
)

// makeGlyph creates a test glyph with the default (Helvetica) metrics
func makeGlyph(s string, x, y, size float64) text.Glyph {
	return text.NewGlyph(s, x, y, size)
}

// makeRun lays out s from x using the table advances. A space in s moves
// the pen by half an em and emits no glyph, like a justified word gap.
func makeRun(s string, x, y, size float64) []text.Glyph {
	return layoutRun(s, x, y, size, false)
}

// makeBoldRun is makeRun with bold glyphs
func makeBoldRun(s string, x, y, size float64) []text.Glyph {
	return layoutRun(s, x, y, size, true)
}

func layoutRun(s string, x, y, size float64, bold bool) []text.Glyph {
	m := DefaultMetrics()
	var out []text.Glyph
	for _, r := range s {
		if r == ' ' {
			x += 0.5 * size
			continue
		}
		g := makeGlyph(string(r), x, y, size)
		g.Bold = bold
		adv, _ := m.Advance(g)
		out = append(out, g)
		x += adv
	}
	return out
}

// concat joins glyph runs and numbers them in input order
func concat(runs ...[]text.Glyph) []text.Glyph {
	var out []text.Glyph
	for _, r := range runs {
		out = append(out, r...)
	}
	for i := range out {
		out[i].Seq = i
	}
	return out
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
