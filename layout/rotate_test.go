package layout

import (
	"math"
	"testing"

	"github.com/tsawler/glyphtext/model"
	"github.com/tsawler/glyphtext/text"
)

func TestNormalize_Upright(t *testing.T) {
	glyphs := makeRun("abc", 0, 100, 10)
	out, orientation := Normalize(glyphs)

	if orientation != text.Rot0 {
		t.Errorf("Expected rot0, got %v", orientation)
	}
	for i := range glyphs {
		if out[i] != glyphs[i] {
			t.Errorf("Glyph %d changed: %v", i, out[i])
		}
	}
}

func TestNormalize_Empty(t *testing.T) {
	out, orientation := Normalize(nil)
	if len(out) != 0 {
		t.Errorf("Expected no glyphs, got %d", len(out))
	}
	if orientation != text.OrientationAny {
		t.Errorf("Expected orientation any, got %v", orientation)
	}
}

func TestNormalize_UpsideDown(t *testing.T) {
	a := makeGlyph("a", 100, 50, 10)
	b := makeGlyph("b", 94.44, 50, 10)
	a.Rotation, b.Rotation = 180, 180

	out, orientation := Normalize([]text.Glyph{a, b})
	if orientation != text.RotPi {
		t.Fatalf("Expected rot180, got %v", orientation)
	}
	if !(out[0].X < out[1].X) {
		t.Errorf("Expected a left of b after normalization, got %v and %v", out[0].X, out[1].X)
	}
	if !approxEqual(out[0].Y, 50) || !approxEqual(out[1].Y, 50) {
		t.Errorf("Expected baseline 50 around the pivot, got %v and %v", out[0].Y, out[1].Y)
	}
	for _, g := range out {
		if g.Rotation != 0 {
			t.Errorf("Expected rotation 0, got %v", g.Rotation)
		}
	}
	if out[0].Origin.X != 100 {
		t.Errorf("Expected origin to be kept, got %v", out[0].Origin)
	}
}

func TestNormalize_MixedKeepsMinority(t *testing.T) {
	glyphs := []text.Glyph{
		makeGlyph("a", 100, 0, 10),
		makeGlyph("b", 100, 6, 10),
		makeGlyph("x", 0, 0, 10),
	}
	glyphs[0].Rotation, glyphs[1].Rotation = 90, 90

	out, orientation := Normalize(glyphs)
	if orientation != text.RotPi2 {
		t.Fatalf("Expected rot90, got %v", orientation)
	}
	if out[2].Rotation != 270 {
		t.Errorf("Expected the upright glyph to carry the residual turn, got %v", out[2].Rotation)
	}
}

func TestNormalizeDegrees(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{90, 90},
		{-90, 270},
		{360, 0},
		{450, 90},
		{-450, 270},
	}
	for _, tt := range tests {
		if got := normalizeDegrees(tt.in); !approxEqual(got, tt.want) {
			t.Errorf("normalizeDegrees(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalize_PageMatrix(t *testing.T) {
	if _, _, toPage := normalize(makeRun("abc", 0, 100, 10)); !toPage.IsIdentity() {
		t.Errorf("Expected the identity for upright text, got %v", toPage)
	}

	tests := []struct {
		name     string
		rotation float64
	}{
		{"quarter turn", 90},
		{"half turn", 180},
		{"three quarters", 270},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			glyphs := []text.Glyph{
				makeGlyph("a", 100, 50, 10),
				makeGlyph("b", 120, 80, 10),
			}
			for i := range glyphs {
				glyphs[i].Rotation = tt.rotation
			}

			out, _, toPage := normalize(glyphs)
			for i, g := range out {
				p := toPage.Transform(model.Point{X: g.X, Y: g.Y})
				if !approxEqual(p.X, glyphs[i].X) || !approxEqual(p.Y, glyphs[i].Y) {
					t.Errorf("Glyph %d maps back to %v, want (%v, %v)", i, p, glyphs[i].X, glyphs[i].Y)
				}
			}
		})
	}
}

func TestPageBox(t *testing.T) {
	box := model.NewBBox(10, 20, 30, 5)
	if got := pageBox(model.Identity(), box); got != box {
		t.Errorf("Expected the identity to keep %v, got %v", box, got)
	}

	// A quarter turn about the origin swaps the sides
	got := pageBox(model.Rotate(math.Pi/2), box)
	want := model.NewBBoxFromEdges(-25, 10, -20, 40)
	if !got.ApproxEqual(want, 1e-9) {
		t.Errorf("pageBox() = %v, want %v", got, want)
	}
}
