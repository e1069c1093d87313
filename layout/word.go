package layout

import (
	"strings"

	"github.com/tsawler/glyphtext/text"
)

// Word is a maximal run of non-space glyphs with no inferred boundary
// between them. Glyphs is a view into the segmented slice, not a copy.
type Word struct {
	// Start and End index the segmented slice (End exclusive)
	Start, End int

	Glyphs []text.Glyph
}

// Text returns the word's characters
func (w Word) Text() string {
	var sb strings.Builder
	for _, g := range w.Glyphs {
		sb.WriteString(g.Text)
	}
	return sb.String()
}

// WordSegmenter infers word boundaries from inter-glyph gaps
type WordSegmenter struct {
	config  WordConfig
	metrics Metrics
}

// NewWordSegmenter creates a word segmenter with default configuration
func NewWordSegmenter() *WordSegmenter {
	return &WordSegmenter{
		config:  DefaultWordConfig(),
		metrics: DefaultMetrics(),
	}
}

// NewWordSegmenterWithConfig creates a word segmenter with custom configuration
func NewWordSegmenterWithConfig(config WordConfig, metrics Metrics) *WordSegmenter {
	return &WordSegmenter{
		config:  config,
		metrics: metrics,
	}
}

// Segment splits an X-sorted glyph run into words
func (s *WordSegmenter) Segment(glyphs []text.Glyph) []Word {
	return s.segment(glyphs, nil)
}

// SegmentLine splits a line into words
func (s *WordSegmenter) SegmentLine(l Line) []Word {
	return s.Segment(l.Glyphs)
}

// Boundaries reports, for each glyph, whether a new word starts there.
// The first non-space glyph never starts a boundary and whitespace glyphs
// never do.
func (s *WordSegmenter) Boundaries(glyphs []text.Glyph) []bool {
	return s.boundaries(glyphs, nil)
}

func (s *WordSegmenter) segment(glyphs []text.Glyph, diag *diagnostics) []Word {
	if len(glyphs) == 0 {
		return nil
	}

	breaks := s.boundaries(glyphs, diag)
	var words []Word
	start := -1
	for i, g := range glyphs {
		switch {
		case g.IsSpace():
			// Whitespace closes the open word and belongs to neither side
			if start >= 0 {
				words = append(words, Word{Start: start, End: i, Glyphs: glyphs[start:i:i]})
				start = -1
			}
		case start < 0:
			start = i
		case breaks[i]:
			words = append(words, Word{Start: start, End: i, Glyphs: glyphs[start:i:i]})
			start = i
		}
	}
	if start >= 0 {
		words = append(words, Word{Start: start, End: len(glyphs), Glyphs: glyphs[start:]})
	}
	return words
}

// boundaries flags the non-space glyphs that start a word. A glyph starts
// one when whitespace separates it from the previous non-space glyph or
// when the gap exceeds the spacing threshold. Whitespace glyphs are never
// flagged.
func (s *WordSegmenter) boundaries(glyphs []text.Glyph, diag *diagnostics) []bool {
	breaks := make([]bool, len(glyphs))
	prev := -1
	spaced := false
	for i, g := range glyphs {
		if g.IsSpace() {
			spaced = true
			continue
		}
		if prev >= 0 {
			breaks[i] = spaced || s.gapBreaks(glyphs[prev], g, diag)
		}
		prev, spaced = i, false
	}
	return breaks
}

func (s *WordSegmenter) gapBreaks(prev, next text.Glyph, diag *diagnostics) bool {
	expected := s.metrics.measure(prev, diag) * s.config.SpaceFactor
	gap := next.X - prev.X
	if expected <= 0 {
		return gap > 0
	}
	return gap/expected > 1.0
}
