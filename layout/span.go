package layout

import (
	"math"
	"strings"

	"github.com/tsawler/glyphtext/model"
	"github.com/tsawler/glyphtext/text"
)

// SpanStyle is the set of attributes shared by every real glyph of a span
type SpanStyle struct {
	FontFamily string
	FontSize   float64
	Bold       bool
	Italic     bool
	Fill       text.Color
	Stroke     text.Color
}

func styleOf(g text.Glyph) SpanStyle {
	return SpanStyle{
		FontFamily: g.FontFamily,
		FontSize:   g.FontSize,
		Bold:       g.Bold,
		Italic:     g.Italic,
		Fill:       g.Fill,
		Stroke:     g.Stroke,
	}
}

// Span is a maximal run of interleaved glyphs sharing one style and
// baseline-offset class
type Span struct {
	Style SpanStyle

	// Role is the role of the line the glyphs came from
	Role ScriptRole

	// Script is the effective baseline-offset class. It equals Role unless
	// a main-line span sits off the baseline in a smaller font.
	Script ScriptRole

	// Glyphs are in emission order and may include synthetic spaces
	Glyphs []text.Glyph

	// Baseline is the Y of the span's first real glyph
	Baseline float64

	BBox model.BBox

	// PageBBox is BBox in page space; see Block.PageBBox
	PageBBox model.BBox
}

// Text returns the span characters including synthetic spaces
func (s Span) Text() string {
	var sb strings.Builder
	for _, g := range s.Glyphs {
		sb.WriteString(g.Text)
	}
	return sb.String()
}

// SourceGlyphs returns the glyphs that came from the input
func (s Span) SourceGlyphs() []text.Glyph {
	var out []text.Glyph
	for _, g := range s.Glyphs {
		if !g.Synthetic {
			out = append(out, g)
		}
	}
	return out
}

// RealGlyphCount returns the number of non-whitespace source glyphs
func (s Span) RealGlyphCount() int {
	n := 0
	for _, g := range s.Glyphs {
		if !g.Synthetic && !g.IsSpace() {
			n++
		}
	}
	return n
}

func (s Span) endsWithSpace() bool {
	return len(s.Glyphs) > 0 && s.Glyphs[len(s.Glyphs)-1].IsSpace()
}

// SpanBuilder compresses the interleaved sequence of a script line into
// style spans
type SpanBuilder struct {
	config  SpanConfig
	metrics Metrics
}

// NewSpanBuilder creates a span builder with default configuration
func NewSpanBuilder() *SpanBuilder {
	return &SpanBuilder{
		config:  DefaultSpanConfig(),
		metrics: DefaultMetrics(),
	}
}

// NewSpanBuilderWithConfig creates a span builder with custom configuration
func NewSpanBuilderWithConfig(config SpanConfig, metrics Metrics) *SpanBuilder {
	return &SpanBuilder{
		config:  config,
		metrics: metrics,
	}
}

// Build returns the spans of a script line
func (b *SpanBuilder) Build(sl *ScriptLine) []Span {
	return b.build(sl, nil)
}

type openSpan struct {
	span     Span
	line     int
	lastReal text.Glyph
}

func (b *SpanBuilder) build(sl *ScriptLine, diag *diagnostics) []Span {
	var spans []Span
	var lines []int
	var cur *openSpan

	// Whitespace waiting for the next span of its line
	var pending []ScriptGlyph

	closeCurrent := func() {
		spans = append(spans, b.close(cur, sl))
		lines = append(lines, cur.line)
	}

	for _, sg := range sl.Sequence {
		g := sg.Glyph

		if g.IsSpace() {
			if cur != nil && cur.line == sg.Line {
				cur.span.Glyphs = append(cur.span.Glyphs, g)
			} else {
				pending = append(pending, sg)
			}
			continue
		}

		switch {
		case cur == nil:
			cur = b.open(sg, &pending)

		case b.startsSpan(cur, sg):
			if !cur.span.endsWithSpace() && !hasPending(pending, sg.Line) &&
				(sg.BreakBefore || b.gapExceeded(cur.lastReal, g, diag)) {
				cur.span.Glyphs = append(cur.span.Glyphs, b.spaceAfter(cur.lastReal, diag))
			}
			closeCurrent()
			cur = b.open(sg, &pending)

		default:
			if sg.BreakBefore && !cur.span.endsWithSpace() {
				cur.span.Glyphs = append(cur.span.Glyphs, b.spaceAfter(cur.lastReal, diag))
			}
			cur.span.Glyphs = append(cur.span.Glyphs, g)
			cur.lastReal = g
		}
	}
	if cur != nil {
		closeCurrent()
	}

	// Trailing whitespace joins the last span of its line
	dropped := 0
	for _, sg := range pending {
		attached := false
		for i := len(spans) - 1; i >= 0; i-- {
			if lines[i] == sg.Line {
				spans[i].Glyphs = append(spans[i].Glyphs, sg.Glyph)
				attached = true
				break
			}
		}
		if !attached {
			dropped++
		}
	}
	if dropped > 0 {
		diag.debug("dropped whitespace-only line", "glyphs", dropped)
	}

	// A span with no real glyph carries nothing
	kept := spans[:0]
	for _, sp := range spans {
		if sp.RealGlyphCount() > 0 {
			sp.BBox = b.box(sp)
			kept = append(kept, sp)
		}
	}
	return kept
}

// open starts a span at sg and takes the pending whitespace of its line as
// leading glyphs
func (b *SpanBuilder) open(sg ScriptGlyph, pending *[]ScriptGlyph) *openSpan {
	sp := &openSpan{
		span: Span{
			Style:    styleOf(sg.Glyph),
			Role:     sg.Role,
			Script:   sg.Role,
			Baseline: sg.Glyph.Y,
		},
		line:     sg.Line,
		lastReal: sg.Glyph,
	}

	rest := (*pending)[:0]
	for _, p := range *pending {
		if p.Line == sg.Line {
			sp.span.Glyphs = append(sp.span.Glyphs, p.Glyph)
		} else {
			rest = append(rest, p)
		}
	}
	*pending = rest

	sp.span.Glyphs = append(sp.span.Glyphs, sg.Glyph)
	return sp
}

func hasPending(pending []ScriptGlyph, line int) bool {
	for _, p := range pending {
		if p.Line == line {
			return true
		}
	}
	return false
}

// startsSpan reports whether sg cannot continue the open span
func (b *SpanBuilder) startsSpan(cur *openSpan, sg ScriptGlyph) bool {
	g := sg.Glyph
	s := cur.span.Style
	return sg.Line != cur.line ||
		sg.Role != cur.span.Role ||
		g.Bold != s.Bold ||
		g.Italic != s.Italic ||
		g.FontFamily != s.FontFamily ||
		math.Abs(g.FontSize-s.FontSize) > b.config.SizeEps ||
		g.Fill != s.Fill ||
		g.Stroke != s.Stroke ||
		math.Abs(g.Y-cur.span.Baseline) > b.config.SuscriptEps
}

// gapExceeded reports whether the edge gap between last and next is wide
// enough to read as a space
func (b *SpanBuilder) gapExceeded(last, next text.Glyph, diag *diagnostics) bool {
	edge := last.X + b.metrics.measure(last, diag)
	return next.X-edge > b.config.SpaceFactor*last.FontSize
}

func (b *SpanBuilder) spaceAfter(last text.Glyph, diag *diagnostics) text.Glyph {
	return text.SpaceAfter(last, last.X+b.metrics.measure(last, diag))
}

// box is the union of the source glyph extents
func (b *SpanBuilder) box(sp Span) model.BBox {
	boxes := make([]model.BBox, 0, len(sp.Glyphs))
	for _, g := range sp.Glyphs {
		if !g.Synthetic {
			boxes = append(boxes, b.metrics.Extent(g))
		}
	}
	return model.UnionAll(boxes...)
}

// close finalizes the effective script class of a span
func (b *SpanBuilder) close(cur *openSpan, sl *ScriptLine) Span {
	sp := cur.span

	if sp.Role == RoleNone && sl.IsResolved() {
		dy := sp.Baseline - sl.Baseline()
		if math.Abs(dy) > b.config.SuscriptEps && sp.Style.FontSize < sl.FontSize()-b.config.SizeEps {
			if dy < 0 {
				sp.Script = RoleSup
			} else {
				sp.Script = RoleSub
			}
		}
	}
	return sp
}
