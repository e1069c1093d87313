package text

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func ptr(f float64) *float64 { return &f }

func TestFromRaw(t *testing.T) {
	records := []RawGlyph{
		{Text: "A", X: ptr(10), Y: ptr(20), FontFamily: "Helvetica", FontSize: 12, Bold: true, Fill: " #FF0000 "},
		{Text: "b", X: ptr(18), Y: ptr(20), FontFamily: "Helvetica", FontSize: 12, Width: ptr(6.5)},
	}

	glyphs, err := FromRaw(records)
	if err != nil {
		t.Fatalf("FromRaw failed: %v", err)
	}

	if len(glyphs) != 2 {
		t.Fatalf("Expected 2 glyphs, got %d", len(glyphs))
	}

	g := glyphs[0]
	if g.Text != "A" || g.X != 10 || g.Y != 20 || !g.Bold {
		t.Errorf("Unexpected glyph: %+v", g)
	}
	if g.Fill != "#ff0000" {
		t.Errorf("Expected normalized fill, got %q", g.Fill)
	}
	if g.Seq != 0 || glyphs[1].Seq != 1 {
		t.Errorf("Expected sequence numbers 0 and 1, got %d and %d", g.Seq, glyphs[1].Seq)
	}
	if g.Origin.X != 10 || g.Origin.Y != 20 {
		t.Errorf("Expected origin (10,20), got %+v", g.Origin)
	}
	if g.HasWidth() {
		t.Error("First glyph should not declare a width")
	}
	if glyphs[1].Width != 6.5 {
		t.Errorf("Expected declared width 6.5, got %v", glyphs[1].Width)
	}
}

func TestFromRaw_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		rec   RawGlyph
		field string
	}{
		{"missing y", RawGlyph{Text: "a", X: ptr(1), FontSize: 10}, "y"},
		{"missing x", RawGlyph{Text: "a", Y: ptr(1), FontSize: 10}, "x"},
		{"nan y", RawGlyph{Text: "a", X: ptr(1), Y: ptr(math.NaN()), FontSize: 10}, "y"},
		{"empty text", RawGlyph{X: ptr(1), Y: ptr(1), FontSize: 10}, "text"},
		{"zero size", RawGlyph{Text: "a", X: ptr(1), Y: ptr(1)}, "size"},
		{"huge y", RawGlyph{Text: "a", X: ptr(1), Y: ptr(1e19), FontSize: 10}, "y"},
		{"huge negative x", RawGlyph{Text: "a", X: ptr(-9.3e18), Y: ptr(1), FontSize: 10}, "x"},
		{"just past the bound", RawGlyph{Text: "a", X: ptr(1), Y: ptr(MaxCoordinate + 1), FontSize: 10}, "y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			good := RawGlyph{Text: "z", X: ptr(0), Y: ptr(0), FontSize: 10}
			_, err := FromRaw([]RawGlyph{good, tt.rec})

			var mErr *MalformedGlyphError
			if !errors.As(err, &mErr) {
				t.Fatalf("Expected MalformedGlyphError, got %v", err)
			}
			if mErr.Index != 1 {
				t.Errorf("Expected index 1, got %d", mErr.Index)
			}
			if mErr.Field != tt.field {
				t.Errorf("Expected field %q, got %q", tt.field, mErr.Field)
			}
			if mErr.Record.Text != tt.rec.Text {
				t.Errorf("Expected offending record to be reported")
			}
		})
	}
}

func TestGlyphIsSpace(t *testing.T) {
	if !NewGlyph(" ", 0, 0, 10).IsSpace() {
		t.Error("Space glyph should be space")
	}
	if !NewGlyph(" ", 0, 0, 10).IsSpace() {
		t.Error("No-break space should be space")
	}
	if NewGlyph("x", 0, 0, 10).IsSpace() {
		t.Error("Letter should not be space")
	}
}

func TestGlyphExtent(t *testing.T) {
	g := NewGlyph("H", 10, 100, 10)
	box := g.Extent(7, 0.7, 0.2)

	if box.Left() != 10 || box.Right() != 17 {
		t.Errorf("Unexpected horizontal extent %+v", box)
	}
	if math.Abs(box.Top()-93) > 1e-9 || math.Abs(box.Bottom()-102) > 1e-9 {
		t.Errorf("Unexpected vertical extent %+v", box)
	}
}

func TestSpaceAfter(t *testing.T) {
	g := NewGlyph("a", 10, 50, 12)
	g.Bold = true
	g.Seq = 4

	sp := SpaceAfter(g, 16)
	if !sp.Synthetic || sp.Seq != -1 || sp.Text != " " {
		t.Errorf("Unexpected synthetic space %+v", sp)
	}
	if !sp.Bold || sp.FontSize != 12 {
		t.Error("Synthetic space should inherit style")
	}
	if g.Synthetic {
		t.Error("Source glyph must not be modified")
	}
}

func TestNormalizeUnicode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"already normalized", "café", "café"},
		{"decomposed to composed", "café", "café"},
		{"ASCII unchanged", "Hello World", "Hello World"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeUnicode(tt.input); got != tt.expected {
				t.Errorf("NormalizeUnicode(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFoldCompat(t *testing.T) {
	if got := FoldCompat("ﬁ"); got != "fi" {
		t.Errorf("FoldCompat(ligature) = %q, want %q", got, "fi")
	}
	if got := FoldCompat("²"); got != "2" {
		t.Errorf("FoldCompat(superscript two) = %q, want %q", got, "2")
	}
}

func TestDecodeRawGlyphs(t *testing.T) {
	input := `[
		{"text": "H", "x": 0, "y": 100, "font": "Helvetica", "size": 10},
		{"text": "2", "x": 7.2, "y": 103, "size": 6, "bold": true},
		{"text": "?", "y": 5, "size": 6}
	]`

	records, err := DecodeRawGlyphs(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeRawGlyphs failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	if records[1].X == nil || *records[1].X != 7.2 || !records[1].Bold {
		t.Errorf("Unexpected record %+v", records[1])
	}
	if records[2].X != nil {
		t.Error("Missing x should decode as nil")
	}

	if _, err := FromRaw(records); err == nil {
		t.Error("Expected FromRaw to reject the record without x")
	}
}

func TestDecodeRawGlyphs_Invalid(t *testing.T) {
	if _, err := DecodeRawGlyphs(strings.NewReader(`{"text":`)); err == nil {
		t.Error("Expected error for truncated JSON")
	}
}

func TestValidate(t *testing.T) {
	good := []Glyph{NewGlyph("a", 0, 0, 10), NewGlyph("b", 5, 0, 10)}
	if err := Validate(good); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}

	bad := append(good, NewGlyph("c", math.Inf(1), 0, 10))
	var mErr *MalformedGlyphError
	if err := Validate(bad); !errors.As(err, &mErr) || mErr.Index != 2 || mErr.Field != "x" {
		t.Errorf("Validate() = %v, want malformed x at index 2", err)
	}

	if err := Validate([]Glyph{NewGlyph("e", 0, -MaxCoordinate, 10)}); err != nil {
		t.Errorf("Validate() unexpected error at the coordinate bound: %v", err)
	}
	if err := Validate([]Glyph{NewGlyph("e", 0, 1<<63, 10)}); !errors.As(err, &mErr) || mErr.Field != "y" {
		t.Errorf("Validate() = %v, want malformed y", err)
	}

	if err := Validate([]Glyph{NewGlyph("d", 0, 0, 0)}); !errors.As(err, &mErr) || mErr.Field != "size" {
		t.Errorf("Validate() = %v, want malformed size", err)
	}
}

func TestGlyphRaw(t *testing.T) {
	g := NewGlyph("x", 3, 4, 9)
	g.Width = 2.5
	g.Italic = true

	back, err := FromRaw([]RawGlyph{g.Raw()})
	if err != nil {
		t.Fatalf("FromRaw(Raw()) failed: %v", err)
	}
	if back[0].Text != "x" || back[0].X != 3 || back[0].Y != 4 || back[0].Width != 2.5 || !back[0].Italic {
		t.Errorf("Raw round trip lost data: %+v", back[0])
	}
}
