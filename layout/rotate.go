package layout

import (
	"math"

	"github.com/tsawler/glyphtext/model"
	"github.com/tsawler/glyphtext/text"
)

// Normalize counter-rotates glyphs whose dominant orientation is a
// non-zero quarter turn so that their baselines run left to right. The
// rotation is about the centre of the glyph-origin box. Rot0, Any and
// Irregular inputs are returned unchanged. Glyph Origin is preserved.
//
// A glyph's Rotation is the angle of its baseline direction in the Y-down
// page space: 90 means the text runs down the page.
func Normalize(glyphs []text.Glyph) ([]text.Glyph, text.Orientation) {
	out, orientation, _ := normalize(glyphs)
	return out, orientation
}

// normalize is Normalize that also returns the matrix mapping the
// normalized space back onto the page. It is the identity when nothing
// was rotated.
func normalize(glyphs []text.Glyph) ([]text.Glyph, text.Orientation, model.Matrix) {
	orientation := text.DominantOrientation(glyphs)
	deg, ok := orientation.Degrees()
	if !ok || deg == 0 {
		return glyphs, orientation, model.Identity()
	}

	pivot := originBox(glyphs).Center()
	angle := deg * math.Pi / 180
	m := model.RotateAbout(-angle, pivot)

	out := make([]text.Glyph, len(glyphs))
	for i, g := range glyphs {
		p := m.Transform(model.Point{X: g.X, Y: g.Y})
		g.X, g.Y = p.X, p.Y
		g.Rotation = normalizeDegrees(g.Rotation - deg)
		out[i] = g
	}
	return out, orientation, model.RotateAbout(angle, pivot)
}

// pageBox maps a box of the normalized space onto the page. Quarter turns
// keep boxes axis-aligned, so the corners give the exact page box.
func pageBox(toPage model.Matrix, b model.BBox) model.BBox {
	if toPage.IsIdentity() {
		return b
	}
	return model.NewBBoxFromPoints(
		toPage.Transform(model.Point{X: b.Left(), Y: b.Top()}),
		toPage.Transform(model.Point{X: b.Right(), Y: b.Top()}),
		toPage.Transform(model.Point{X: b.Left(), Y: b.Bottom()}),
		toPage.Transform(model.Point{X: b.Right(), Y: b.Bottom()}),
	)
}

// setPageBoxes fills PageBBox on every block and span of blocks
func setPageBoxes(blocks []Block, toPage model.Matrix) {
	for i := range blocks {
		b := &blocks[i]
		b.PageBBox = pageBox(toPage, b.BBox)
		for j := range b.Lines {
			for k := range b.Lines[j].Spans {
				sp := &b.Lines[j].Spans[k]
				sp.PageBBox = pageBox(toPage, sp.BBox)
			}
		}
	}
}

func originBox(glyphs []text.Glyph) model.BBox {
	if len(glyphs) == 0 {
		return model.BBox{}
	}
	minX, minY := glyphs[0].X, glyphs[0].Y
	maxX, maxY := minX, minY
	for _, g := range glyphs[1:] {
		minX = math.Min(minX, g.X)
		minY = math.Min(minY, g.Y)
		maxX = math.Max(maxX, g.X)
		maxY = math.Max(maxY, g.Y)
	}
	return model.NewBBoxFromEdges(minX, minY, maxX, maxY)
}

// normalizeDegrees maps an angle into [0, 360)
func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
