package text

import "testing"

func TestClassifyRotation(t *testing.T) {
	tests := []struct {
		deg  float64
		want Orientation
	}{
		{0, Rot0},
		{0.5, Rot0},
		{359.5, Rot0},
		{360, Rot0},
		{90, RotPi2},
		{-270, RotPi2},
		{180, RotPi},
		{270, Rot3Pi2},
		{-90, Rot3Pi2},
		{45, RotIrregular},
		{92, RotIrregular},
	}

	for _, tt := range tests {
		if got := ClassifyRotation(tt.deg); got != tt.want {
			t.Errorf("ClassifyRotation(%v) = %v, want %v", tt.deg, got, tt.want)
		}
	}
}

func TestDominantOrientation(t *testing.T) {
	rot := func(deg float64) Glyph {
		g := NewGlyph("a", 0, 0, 10)
		g.Rotation = deg
		return g
	}

	tests := []struct {
		name   string
		glyphs []Glyph
		want   Orientation
	}{
		{"empty", nil, OrientationAny},
		{"upright", []Glyph{rot(0), rot(0)}, Rot0},
		{"mostly rotated", []Glyph{rot(90), rot(90), rot(0)}, RotPi2},
		{"tie prefers upright", []Glyph{rot(180), rot(0)}, Rot0},
		{"irregular", []Glyph{rot(30), rot(31)}, RotIrregular},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DominantOrientation(tt.glyphs); got != tt.want {
				t.Errorf("DominantOrientation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrientationDegrees(t *testing.T) {
	if d, ok := Rot3Pi2.Degrees(); !ok || d != 270 {
		t.Errorf("Rot3Pi2.Degrees() = %v, %v", d, ok)
	}
	if _, ok := RotIrregular.Degrees(); ok {
		t.Error("Irregular orientation should have no angle")
	}
	if RotPi2.String() != "rot90" {
		t.Errorf("Unexpected String(): %s", RotPi2.String())
	}
}

func TestDetectDirection(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Direction
	}{
		{"latin", "Hello", LTR},
		{"arabic", "مرحبا", RTL},
		{"hebrew", "שלום", RTL},
		{"digits only", "12345", Neutral},
		{"mixed mostly latin", "abc א", LTR},
		{"empty", "", Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectDirection(tt.text); got != tt.want {
				t.Errorf("DetectDirection(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
