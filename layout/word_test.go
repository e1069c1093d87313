package layout

import (
	"testing"

	"github.com/tsawler/glyphtext/font"
	"github.com/tsawler/glyphtext/text"
)

func wordTexts(words []Word) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.Text()
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestWordSegmenter_Empty(t *testing.T) {
	if words := NewWordSegmenter().Segment(nil); words != nil {
		t.Errorf("Expected no words, got %v", words)
	}
}

func TestWordSegmenter_PageNumber(t *testing.T) {
	glyphs := []text.Glyph{
		makeGlyph("P", 0, 0, 10),
		makeGlyph("a", 6, 0, 10),
		makeGlyph("g", 11, 0, 10),
		makeGlyph("e", 16, 0, 10),
		makeGlyph("6", 40, 0, 10),
	}

	words := NewWordSegmenter().Segment(glyphs)

	got := wordTexts(words)
	if !equalStrings(got, []string{"Page", "6"}) {
		t.Fatalf("Expected [Page 6], got %v", got)
	}
	if words[1].Start != 4 || words[1].End != 5 {
		t.Errorf("Expected second word at [4,5), got [%d,%d)", words[1].Start, words[1].End)
	}
}

func TestWordSegmenter_SpaceGlyphs(t *testing.T) {
	tests := []struct {
		name   string
		glyphs []text.Glyph
		want   []string
		starts []int
	}{
		{
			"page number with a space glyph",
			[]text.Glyph{
				makeGlyph("P", 0, 0, 10),
				makeGlyph("a", 6, 0, 10),
				makeGlyph("g", 11, 0, 10),
				makeGlyph("e", 16, 0, 10),
				makeGlyph(" ", 21, 0, 10),
				makeGlyph("6", 24, 0, 10),
			},
			[]string{"Page", "6"},
			[]int{0, 5},
		},
		{
			"space inside a tight gap",
			[]text.Glyph{
				makeGlyph("a", 0, 0, 10),
				makeGlyph(" ", 3, 0, 10),
				makeGlyph("b", 5, 0, 10),
			},
			[]string{"a", "b"},
			[]int{0, 2},
		},
		{
			"leading and trailing spaces",
			[]text.Glyph{
				makeGlyph(" ", 0, 0, 10),
				makeGlyph("o", 3, 0, 10),
				makeGlyph("k", 8.56, 0, 10),
				makeGlyph("\t", 13.56, 0, 10),
			},
			[]string{"ok"},
			[]int{1},
		},
		{
			"spaces only",
			[]text.Glyph{
				makeGlyph(" ", 0, 0, 10),
				makeGlyph(" ", 3, 0, 10),
			},
			nil,
			nil,
		},
	}

	segmenter := NewWordSegmenter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words := segmenter.Segment(tt.glyphs)
			got := wordTexts(words)
			if !equalStrings(got, tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, got)
			}
			for i, w := range words {
				if w.Start != tt.starts[i] {
					t.Errorf("Word %d: expected start %d, got %d", i, tt.starts[i], w.Start)
				}
			}
		})
	}
}

func TestWordSegmenter_SpaceGlyphBoundaries(t *testing.T) {
	glyphs := []text.Glyph{
		makeGlyph("a", 0, 0, 10),
		makeGlyph(" ", 3, 0, 10),
		makeGlyph("b", 5, 0, 10),
		makeGlyph("c", 10.56, 0, 10),
	}
	breaks := NewWordSegmenter().Boundaries(glyphs)

	want := []bool{false, false, true, false}
	for i := range want {
		if breaks[i] != want[i] {
			t.Errorf("Glyph %d: expected boundary %v, got %v", i, want[i], breaks[i])
		}
	}
}

func TestWordSegmenter_Runs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"single word", "hello", []string{"hello"}},
		{"two words", "hello world", []string{"hello", "world"}},
		{"wide final letters", "Sum of WW", []string{"Sum", "of", "WW"}},
		{"digits", "12 345", []string{"12", "345"}},
	}

	segmenter := NewWordSegmenter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wordTexts(segmenter.Segment(makeRun(tt.text, 0, 100, 10)))
			if !equalStrings(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestWordSegmenter_DeclaredWidth(t *testing.T) {
	a := makeGlyph("a", 0, 0, 10)
	b := makeGlyph("b", 3.5, 0, 10)

	// Table width: 5.56 * 1.4 > 3.5
	if got := NewWordSegmenter().Boundaries([]text.Glyph{a, b}); got[1] {
		t.Error("Expected no boundary with table metrics")
	}

	// Declared width: 2 * 1.4 < 3.5
	a.Width = 2
	if got := NewWordSegmenter().Boundaries([]text.Glyph{a, b}); !got[1] {
		t.Error("Expected a boundary with the declared width")
	}
}

func TestWordSegmenter_FirstGlyphNeverBreaks(t *testing.T) {
	breaks := NewWordSegmenter().Boundaries(makeRun("a b c", 0, 0, 10))
	if len(breaks) != 3 {
		t.Fatalf("Expected 3 flags, got %d", len(breaks))
	}
	if breaks[0] {
		t.Error("First glyph should never start a boundary")
	}
	if !breaks[1] || !breaks[2] {
		t.Errorf("Expected boundaries before b and c, got %v", breaks)
	}
}

func TestWordSegmenter_SpaceFactor(t *testing.T) {
	glyphs := []text.Glyph{
		makeGlyph("a", 0, 0, 10),
		makeGlyph("b", 6.5, 0, 10),
	}

	config := DefaultWordConfig()
	if NewWordSegmenterWithConfig(config, DefaultMetrics()).Boundaries(glyphs)[1] {
		t.Error("Expected no boundary at the default factor")
	}

	config.SpaceFactor = 1.1
	if !NewWordSegmenterWithConfig(config, DefaultMetrics()).Boundaries(glyphs)[1] {
		t.Error("Expected a boundary at factor 1.1")
	}
}

func TestWordSegmenter_MissingMetrics(t *testing.T) {
	metrics := DefaultMetrics()
	metrics.Registry = font.NewRegistry()

	glyphs := []text.Glyph{
		makeGlyph("a", 0, 0, 10),
		makeGlyph("b", 6, 0, 10),
		makeGlyph("c", 20, 0, 10),
	}

	// The default width of 500 gives a 5pt advance and a 7pt threshold
	segmenter := NewWordSegmenterWithConfig(DefaultWordConfig(), metrics)
	diag := newDiagnostics(nil)
	words := segmenter.segment(glyphs, diag)

	got := wordTexts(words)
	if !equalStrings(got, []string{"ab", "c"}) {
		t.Errorf("Expected [ab c], got %v", got)
	}

	if len(diag.warnings) != 2 {
		t.Fatalf("Expected 2 warnings (a and b), got %d", len(diag.warnings))
	}
	for _, w := range diag.warnings {
		if w.Kind != WarningMetrics {
			t.Errorf("Expected metrics warning, got %v", w.Kind)
		}
	}
}

func TestWordSegmenter_SegmentLine(t *testing.T) {
	lines := NewLineBuilder().BuildFromGlyphs(makeRun("one two", 0, 50, 12))
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}
	got := wordTexts(NewWordSegmenter().SegmentLine(lines[0]))
	if !equalStrings(got, []string{"one", "two"}) {
		t.Errorf("Expected [one two], got %v", got)
	}
}
